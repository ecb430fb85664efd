package query

import (
	"fmt"

	"github.com/o0olele/detour-go/builder"
	"github.com/o0olele/detour-go/engine"
)

// LoadAndQuery loads saved mesh data and creates the queryer (one-stop)
func LoadAndQuery(eng engine.Engine, filename string) (*NavQuery, error) {
	data, err := builder.Load(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load nav mesh data: %v", err)
	}

	q, err := NewNavQuery(eng, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create nav query: %v", err)
	}

	return q, nil
}
