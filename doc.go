// Package pixed provides the core building blocks for non-destructive
// pixel editing: format-tagged pixel buffers, regions, blend modes, and
// the collaborator interfaces (selections, undo sinks) consumed by the
// higher-level packages.
//
// # Overview
//
// The module is organized into:
//   - pixed: value types (Buffer, Region, RGBA, Format, BlendMode) and
//     collaborator interfaces (Selection, UndoSink)
//   - pixed/graph: the compositing node graph (source, crop, translate,
//     compose, filter, sink)
//   - pixed/layer: Drawable and Overlay, including the floating-overlay
//     binding and graph synchronization
//   - pixed/filter: filter operations driven by the preview engine
//   - pixed/preview: the incremental, cancelable filter preview pipeline
//
// # Concurrency
//
// The pipeline is single-threaded and cooperative: all buffer mutation,
// graph rewiring, and preview ticks run on one logical thread, yielding
// to a host event loop between ticks. Nothing in this module starts
// goroutines on its own.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Regions
// are rectangles in a drawable's local coordinate space.
package pixed
