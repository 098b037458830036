// Package shaders holds the GLSL sources compiled into the binary. Setting
// assets.shader_dir overrides them with files on disk.
package shaders

import "embed"

//go:embed *.vert *.frag *.geom
var FS embed.FS
