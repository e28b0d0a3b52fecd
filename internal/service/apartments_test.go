package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chedi19/res-appartement/internal/domain"
	"github.com/Chedi19/res-appartement/internal/repo"
	"github.com/Chedi19/res-appartement/internal/service"
)

func TestLoadApartments_SeedsDefaultsOnFirstRun(t *testing.T) {
	blobs := repo.NewMemStore()
	ctx := context.Background()

	reg, err := service.LoadApartments(ctx, blobs)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultApartments(), reg.List())

	// The seeded roster is persisted immediately.
	raw, ok, err := blobs.Read(ctx, repo.KeyApartments)
	require.NoError(t, err)
	require.True(t, ok)

	var persisted []domain.Apartment
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Equal(t, domain.DefaultApartments(), persisted)
}

func TestLoadApartments_LoadsPersistedRosterVerbatim(t *testing.T) {
	blobs := repo.NewMemStore()
	ctx := context.Background()

	roster := []domain.Apartment{
		{ID: "z", Name: "Penthouse", Color: "#111111"},
		{ID: "a", Name: "Cellar", Color: "#222222"},
	}
	encoded, err := json.Marshal(roster)
	require.NoError(t, err)
	require.NoError(t, blobs.Write(ctx, repo.KeyApartments, string(encoded)))

	reg, err := service.LoadApartments(ctx, blobs)
	require.NoError(t, err)

	// As-loaded order, not sorted.
	assert.Equal(t, roster, reg.List())
	assert.Equal(t, roster[0], reg.First())
}

func TestLoadApartments_CorruptBlobFallsBackToDefaults(t *testing.T) {
	blobs := repo.NewMemStore()
	ctx := context.Background()
	require.NoError(t, blobs.Write(ctx, repo.KeyApartments, "not json"))

	reg, err := service.LoadApartments(ctx, blobs)
	require.Error(t, err)
	assert.Equal(t, domain.DefaultApartments(), reg.List())

	// The stored blob is left alone.
	raw, _, _ := blobs.Read(ctx, repo.KeyApartments)
	assert.Equal(t, "not json", raw)
}

func TestApartments_ResolveColor(t *testing.T) {
	blobs := repo.NewMemStore()
	reg, err := service.LoadApartments(context.Background(), blobs)
	require.NoError(t, err)

	first := domain.DefaultApartments()[0]
	assert.Equal(t, first.Color, reg.ResolveColor(first.Name))

	// Unknown names resolve to the neutral fallback, never an error.
	assert.Equal(t, domain.FallbackColor, reg.ResolveColor("demolished wing"))
}

func TestApartments_ListReturnsCopy(t *testing.T) {
	blobs := repo.NewMemStore()
	reg, err := service.LoadApartments(context.Background(), blobs)
	require.NoError(t, err)

	list := reg.List()
	list[0].Color = "#000000"

	assert.Equal(t, domain.DefaultApartments()[0].Color, reg.List()[0].Color)
}
