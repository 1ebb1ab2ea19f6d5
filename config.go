package richtext

import "github.com/goliatone/go-richtext/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired        = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown         = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid            = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid           = runtimeconfig.ErrLoggingFormatInvalid
	ErrMarkdownFeatureRequired        = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownExtensionUnknown       = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrPropsValidationFeatureRequired = runtimeconfig.ErrPropsValidationFeatureRequired
	ErrConversionTimeoutInvalid       = runtimeconfig.ErrConversionTimeoutInvalid
)

type (
	Config           = runtimeconfig.Config
	Features         = runtimeconfig.Features
	LoggingConfig    = runtimeconfig.LoggingConfig
	MarkdownConfig   = runtimeconfig.MarkdownConfig
	ConversionConfig = runtimeconfig.ConversionConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
