//go:build !nogpu

// Package gpu draws rdraw stroke batches with WebGPU through gogpu/wgpu.
//
// Each sub-path strip is drawn with a triangle-strip pipeline whose fragment
// shader applies the fringe coverage min(1, (1-|2u-1|)*strokeMult)*min(1, v)
// and the scissor mask. Batches are queued by RenderStroke and encoded into
// one render pass by Flush.
//
// Usage:
//
//	r, err := gpu.NewStrokeRendererFromProvider(provider)
//	if err != nil {
//		return err
//	}
//	defer r.Destroy()
//	c, _ := rdraw.NewCanvas(rdraw.WithRenderer(r))
//	// ... build paths and call c.Stroke()
//	err = r.Flush(view, width, height)
package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rdraw"
)

var (
	// ErrNilDevice is returned when a renderer is created without a device or queue.
	ErrNilDevice = errors.New("gpu: nil device or queue")
	// ErrNoProvider is returned when a device provider does not expose HAL types.
	ErrNoProvider = errors.New("gpu: provider does not expose HAL device and queue")
	// ErrNoTarget is returned by Flush without a render target.
	ErrNoTarget = errors.New("gpu: nil render target")
)

// strip is a range of vertices drawn with one Draw call.
type strip struct {
	first, count uint32
}

// strokeDraw is one queued stroke batch.
type strokeDraw struct {
	uniform strokeUniform
	strips  []strip
}

// StrokeRenderer implements [rdraw.Renderer] on a HAL device.
type StrokeRenderer struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	// Queued geometry, packed as it arrives. RenderStroke must copy because
	// the canvas reuses its vertex buffer.
	vertices []byte
	draws    []strokeDraw

	logger atomic.Pointer[slog.Logger]
}

// NewStrokeRenderer creates a renderer on device and queue that draws into
// targets of the given format. TextureFormatUndefined selects BGRA8Unorm.
// The pipeline is created lazily by the first Flush.
func NewStrokeRenderer(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*StrokeRenderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	r := &StrokeRenderer{
		device: device,
		queue:  queue,
		format: format,
	}
	r.logger.Store(rdraw.Logger())
	return r, nil
}

// NewStrokeRendererFromProvider creates a renderer on a shared device.
// The provider must also implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func NewStrokeRendererFromProvider(provider gpucontext.DeviceProvider) (*StrokeRenderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoProvider, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNoProvider, hp.HalQueue())
	}
	return NewStrokeRenderer(device, queue, provider.SurfaceFormat())
}

// SetLogger sets the logger. It is called by rdraw.NewCanvas.
func (r *StrokeRenderer) SetLogger(l *slog.Logger) {
	if l == nil {
		l = rdraw.Logger()
	}
	r.logger.Store(l)
}

// Format returns the color target format of the pipeline.
func (r *StrokeRenderer) Format() gputypes.TextureFormat {
	return r.format
}

// Pending returns the number of queued batches and vertices.
func (r *StrokeRenderer) Pending() (batches, vertices int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.draws), len(r.vertices) / vertexStride
}

// RenderStroke queues a copy of the batch for the next Flush.
func (r *StrokeRenderer) RenderStroke(b *rdraw.StrokeBatch) error {
	if b == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	d := strokeDraw{uniform: makeStrokeUniform(b)}
	for i := range b.Paths {
		verts := b.Paths[i].Vertices
		if len(verts) < 3 {
			continue
		}
		first := len(r.vertices) / vertexStride
		r.vertices = appendVertices(r.vertices, verts)
		d.strips = append(d.strips, strip{
			first: uint32(first),      //nolint:gosec // vertex counts fit uint32
			count: uint32(len(verts)), //nolint:gosec // vertex counts fit uint32
		})
	}
	if len(d.strips) == 0 {
		return nil
	}
	r.draws = append(r.draws, d)
	return nil
}

// Flush draws all queued batches into target, a view of a width x height
// texture in the renderer's format, and waits for the GPU. The target is
// loaded, not cleared. The queue is emptied even when drawing fails.
func (r *StrokeRenderer) Flush(target hal.TextureView, width, height uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.resetQueue()

	if len(r.draws) == 0 {
		return nil
	}
	if target == nil {
		return ErrNoTarget
	}
	if width == 0 || height == 0 {
		return nil
	}
	if err := r.ensurePipeline(); err != nil {
		return err
	}

	res, err := r.createFrameResources(width, height)
	if err != nil {
		return err
	}
	defer res.destroy(r.device)

	if err := r.encodeSubmit(target, width, height, res); err != nil {
		return err
	}

	r.logger.Load().Debug("gpu: strokes flushed",
		"batches", len(r.draws),
		"vertices", len(r.vertices)/vertexStride)
	return nil
}

func (r *StrokeRenderer) resetQueue() {
	r.vertices = r.vertices[:0]
	r.draws = r.draws[:0]
}

// frameResources holds the per-flush GPU buffers.
type frameResources struct {
	vertBuf     hal.Buffer
	uniformBufs []hal.Buffer
	bindGroups  []hal.BindGroup
}

func (f *frameResources) destroy(device hal.Device) {
	for _, g := range f.bindGroups {
		device.DestroyBindGroup(g)
	}
	for _, b := range f.uniformBufs {
		device.DestroyBuffer(b)
	}
	if f.vertBuf != nil {
		device.DestroyBuffer(f.vertBuf)
	}
}

func (r *StrokeRenderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		r.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}

func (r *StrokeRenderer) createFrameResources(width, height uint32) (*frameResources, error) {
	res := &frameResources{}

	vertBuf, err := r.createAndUploadBuffer("stroke_vertices", r.vertices,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	res.vertBuf = vertBuf

	for i := range r.draws {
		ubuf, err := r.createAndUploadBuffer("stroke_uniform", r.draws[i].uniform.bytes(width, height),
			gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
		if err != nil {
			res.destroy(r.device)
			return nil, err
		}
		res.uniformBufs = append(res.uniformBufs, ubuf)

		group, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "stroke_bind",
			Layout: r.uniformLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: ubuf.NativeHandle(), Offset: 0, Size: uniformSize,
				}},
			},
		})
		if err != nil {
			res.destroy(r.device)
			return nil, fmt.Errorf("create stroke bind group: %w", err)
		}
		res.bindGroups = append(res.bindGroups, group)
	}
	return res, nil
}

func (r *StrokeRenderer) encodeSubmit(target hal.TextureView, width, height uint32, res *frameResources) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "stroke_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("stroke_frame"); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "stroke_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    target,
				LoadOp:  gputypes.LoadOpLoad,
				StoreOp: gputypes.StoreOpStore,
			},
		},
	})
	rp.SetViewport(0, 0, float32(width), float32(height), 0, 1)
	rp.SetScissorRect(0, 0, width, height)
	rp.SetPipeline(r.pipeline)
	rp.SetVertexBuffer(0, res.vertBuf, 0)
	for i := range r.draws {
		rp.SetBindGroup(0, res.bindGroups[i], nil)
		for _, s := range r.draws[i].strips {
			rp.Draw(s.count, 1, s.first, 0)
		}
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	// Per-frame buffers are destroyed after return, so wait for the GPU.
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait idle: %w", err)
	}
	return nil
}

// ensurePipeline creates the shader, layouts and pipeline if they don't
// already exist.
func (r *StrokeRenderer) ensurePipeline() error {
	if r.pipeline != nil {
		return nil
	}
	if err := r.createPipeline(); err != nil {
		r.destroyPipeline()
		return err
	}
	r.logger.Load().Info("gpu: stroke pipeline created", "format", r.format.String())
	return nil
}

func (r *StrokeRenderer) createPipeline() error {
	shader, err := createShaderModule(r.device, "stroke_shader", strokeShaderSource)
	if err != nil {
		return err
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "stroke_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create stroke uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "stroke_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create stroke pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "stroke_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleStrip,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create stroke pipeline: %w", err)
	}
	r.pipeline = pipeline
	return nil
}

// destroyPipeline releases pipeline resources in reverse creation order.
func (r *StrokeRenderer) destroyPipeline() {
	if r.device == nil {
		return
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// Destroy releases all GPU resources held by the renderer and drops queued
// batches. The device and queue belong to the caller. Safe to call more than
// once.
func (r *StrokeRenderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.destroyPipeline()
	r.resetQueue()
}
