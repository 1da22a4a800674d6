// Package scene builds the declarative description of the animated helix.
//
// A [Scene] is a plain value: two persistent traces, an ordered list of
// [Frame] snapshots and a [Layout] carrying axis, button and slider
// metadata. Nothing in the package renders; backends such as plotly.js, the
// terminal player or the raylib window read the value and draw it.
//
// The JSON encoding of a Scene is a Plotly figure ({data, layout, frames}),
// so it can be handed to plotly.js unchanged.
package scene
