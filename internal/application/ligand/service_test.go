package ligand

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domlig "github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/ligand"
	apperrors "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

type fakeRepo struct {
	byID  map[common.ID]*domlig.Ligand
	byKey map[string]*domlig.Ligand
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:  make(map[common.ID]*domlig.Ligand),
		byKey: make(map[string]*domlig.Ligand),
	}
}

func (r *fakeRepo) Save(_ context.Context, l *domlig.Ligand) error {
	r.byID[l.ID] = l
	r.byKey[l.StructureKey] = l
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id common.ID) (*domlig.Ligand, error) {
	if l, ok := r.byID[id]; ok {
		return l, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeLigandNotFound, "ligand not found")
}

func (r *fakeRepo) FindByStructureKey(_ context.Context, key string) (*domlig.Ligand, error) {
	if l, ok := r.byKey[key]; ok {
		return l, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeLigandNotFound, "ligand not found")
}

func (r *fakeRepo) List(_ context.Context, _ common.Pagination) ([]*domlig.Ligand, int64, error) {
	var out []*domlig.Ligand
	for _, l := range r.byID {
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

type fakeIndex struct {
	indexed map[string][]float32
	hits    []domlig.VectorHit
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: make(map[string][]float32)}
}

func (i *fakeIndex) Index(_ context.Context, key string, vector []float32) error {
	i.indexed[key] = vector
	return nil
}

func (i *fakeIndex) Search(_ context.Context, _ []float32, _ int) ([]domlig.VectorHit, error) {
	return i.hits, nil
}

func TestRegister_SavesAndIndexes(t *testing.T) {
	repo := newFakeRepo()
	index := newFakeIndex()
	svc := NewService(repo, index, nil, nil, nil, nil)

	dto, err := svc.Register(context.Background(), ltypes.RegisterRequest{SMILES: "CCO", Name: "ethanol"})
	require.NoError(t, err)
	assert.Equal(t, "ethanol", dto.Name)
	assert.NotEmpty(t, dto.StructureKey)

	vec, ok := index.indexed[dto.StructureKey]
	require.True(t, ok)
	assert.Len(t, vec, ltypes.VectorDim)
}

func TestRegister_DeduplicatesByStructureKey(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil, nil, nil, nil)

	first, err := svc.Register(context.Background(), ltypes.RegisterRequest{SMILES: "CCO"})
	require.NoError(t, err)
	second, err := svc.Register(context.Background(), ltypes.RegisterRequest{SMILES: "  CCO  "})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.byID, 1)
}

func TestRegister_RejectsInvalidSMILES(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, nil, nil, nil)

	_, err := svc.Register(context.Background(), ltypes.RegisterRequest{SMILES: "C(("})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeLigandInvalidSMILES, apperrors.GetCode(err))
}

func TestDescribe_EmptySMILESRejected(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, nil, nil, nil)

	_, err := svc.Describe(context.Background(), ltypes.DescribeRequest{SMILES: "   "})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeLigandInvalidSMILES, apperrors.GetCode(err))
}

func TestDescribe_Ethanol(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, nil, nil, nil)

	resp, err := svc.Describe(context.Background(), ltypes.DescribeRequest{SMILES: "CCO"})
	require.NoError(t, err)
	assert.InDelta(t, 46.069, resp.Descriptors.MolecularWeight, 1e-3)
	assert.Equal(t, 1, resp.Descriptors.HBondAcceptors)
}

type fakeDepicter struct {
	cid int64
	png []byte
	err error
}

func (d *fakeDepicter) ResolveCID(_ context.Context, _ string) (int64, error) {
	return d.cid, d.err
}

func (d *fakeDepicter) DepictionPNG(_ context.Context, _ string) ([]byte, error) {
	return d.png, d.err
}

func TestDescribe_AnnotatesCIDWhenDepicterConfigured(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, &fakeDepicter{cid: 702}, nil, nil)

	resp, err := svc.Describe(context.Background(), ltypes.DescribeRequest{SMILES: "CCO"})
	require.NoError(t, err)
	assert.EqualValues(t, 702, resp.CID)
}

func TestDescribe_CIDLookupFailureIsSoft(t *testing.T) {
	depicter := &fakeDepicter{err: apperrors.New(apperrors.ErrCodeSourceUnavailable, "down")}
	svc := NewService(newFakeRepo(), nil, nil, depicter, nil, nil)

	resp, err := svc.Describe(context.Background(), ltypes.DescribeRequest{SMILES: "CCO"})
	require.NoError(t, err)
	assert.Zero(t, resp.CID)
}

func TestDepict_ReturnsPNG(t *testing.T) {
	depicter := &fakeDepicter{png: []byte{0x89, 'P', 'N', 'G'}}
	svc := NewService(newFakeRepo(), nil, nil, depicter, nil, nil)

	png, err := svc.Depict(context.Background(), ltypes.DescribeRequest{SMILES: "CCO"})
	require.NoError(t, err)
	assert.Equal(t, depicter.png, png)
}

func TestDepict_WithoutDepicterConfigured(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, nil, nil, nil)

	_, err := svc.Depict(context.Background(), ltypes.DescribeRequest{SMILES: "CCO"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSourceUnavailable, apperrors.GetCode(err))
}

func TestSimilar_JoinsHitsWithStore(t *testing.T) {
	repo := newFakeRepo()
	index := newFakeIndex()
	svc := NewService(repo, index, nil, nil, nil, nil)

	registered, err := svc.Register(context.Background(), ltypes.RegisterRequest{SMILES: "CCN"})
	require.NoError(t, err)

	index.hits = []domlig.VectorHit{
		{StructureKey: registered.StructureKey, Score: 0.5},
		{StructureKey: "LIG-DEADBEEF", Score: 3.0}, // not in store, skipped
	}

	resp, err := svc.Similar(context.Background(), ltypes.SimilarRequest{SMILES: "CCO"})
	require.NoError(t, err)
	require.Len(t, resp.Hits, 1)
	assert.Equal(t, registered.StructureKey, resp.Hits[0].Ligand.StructureKey)
	assert.InDelta(t, float64(1.0/1.5), float64(resp.Hits[0].Score), 1e-6)
}

func TestSimilar_WithoutIndexConfigured(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, nil, nil, nil)

	_, err := svc.Similar(context.Background(), ltypes.SimilarRequest{SMILES: "CCO"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSimilaritySearch, apperrors.GetCode(err))
}
