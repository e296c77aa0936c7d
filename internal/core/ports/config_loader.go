package ports

import "go.trai.ch/ptask/internal/core/domain"

// ManifestLoader defines the interface for loading a task manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads and validates the manifest at path.
	Load(path string) (*domain.Manifest, error)
}
