package renderer

import _ "embed"

// starShaderSource holds the star sprite entry points. It is prefixed with the camera, field and
// star struct definitions by StarShaderSource.
//
//go:embed assets/starfield.wgsl
var starShaderSource string
