package types

// Version is set at build time via -ldflags "-X github.com/m-mizutani/metarel/pkg/domain/types.Version=..."
var Version = "dev"
