package core

import "errors"

var (
	ErrFramebufferIncomplete = errors.New("framebuffer incomplete")
	ErrShaderCompile         = errors.New("shader compile failed")
	ErrShaderLink            = errors.New("shader link failed")
	ErrAssetNotFound         = errors.New("asset not found")
	ErrRegistryFull          = errors.New("light registry full")
	ErrMissingCone           = errors.New("spotlight has no cone")
	ErrUnknownFilter         = errors.New("unknown post-process filter")
)
