package milvus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	apperrors "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

// Validation happens before any network call, so these run without a server.

func validationIndex() *DescriptorIndex {
	return &DescriptorIndex{collection: "ligand_descriptors", nlist: defaultNList, topKCap: defaultTopK}
}

func TestIndex_RejectsEmptyStructureKey(t *testing.T) {
	idx := validationIndex()
	err := idx.Index(context.Background(), "", make([]float32, ltypes.VectorDim))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestIndex_RejectsWrongDimension(t *testing.T) {
	idx := validationIndex()

	err := idx.Index(context.Background(), "LIG-00000001", []float32{1, 2, 3})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))

	_, err = idx.Search(context.Background(), []float32{1, 2, 3}, 5)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestNewClient_RequiresAddr(t *testing.T) {
	_, err := NewClient(context.Background(), config.MilvusConfig{}, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}
