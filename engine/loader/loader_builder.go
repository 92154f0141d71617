package loader

import (
	"log/slog"
)

// LoaderBuilderOption is a functional option for configuring a Loader.
type LoaderBuilderOption func(*loader)

// WithTextureDecoder sets the decoder used for base color maps embedded in or referenced by the model.
// Without a decoder, materials are loaded without maps.
//
// Parameters:
//   - decode: the image decoder
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithTextureDecoder(decode TextureDecoder) LoaderBuilderOption {
	return func(l *loader) {
		l.decode = decode
	}
}

// WithLogger sets the logger used for non-fatal problems such as unreadable embedded maps.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}
