package ports

import "go.trai.ch/ptask/internal/core/domain"

// ResultStore defines the interface for persisting completed task results.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Put stores the result and its captured output.
	// The output is saved as a content-addressed blob and result.OutputDigest is set accordingly.
	Put(result domain.TaskResult, output []byte) error

	// Get retrieves the latest result for a given task name.
	// Returns nil, nil if not found.
	Get(taskName string) (*domain.TaskResult, error)

	// Output returns the blob stored under digest.
	Output(digest string) ([]byte, error)

	// List returns every stored result ordered by task name.
	List() ([]domain.TaskResult, error)
}
