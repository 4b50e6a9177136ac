package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

type stubMovieRepo struct {
	movies map[string]*domain.Movie
}

func newStubMovieRepo() *stubMovieRepo {
	return &stubMovieRepo{movies: make(map[string]*domain.Movie)}
}

func cloneMovie(m *domain.Movie) *domain.Movie {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

func (r *stubMovieRepo) Create(_ context.Context, m *domain.Movie) error {
	r.movies[m.ID] = cloneMovie(m)
	return nil
}

func (r *stubMovieRepo) FindByID(_ context.Context, id string) (*domain.Movie, error) {
	m, ok := r.movies[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return cloneMovie(m), nil
}

func (r *stubMovieRepo) Update(_ context.Context, m *domain.Movie) error {
	if _, ok := r.movies[m.ID]; !ok {
		return domain.ErrMovieNotFound
	}
	r.movies[m.ID] = cloneMovie(m)
	return nil
}

func (r *stubMovieRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.movies[id]; !ok {
		return domain.ErrMovieNotFound
	}
	delete(r.movies, id)
	return nil
}

func (r *stubMovieRepo) List(_ context.Context, filter ports.ListMoviesFilter) ([]*domain.Movie, int64, error) {
	var all []*domain.Movie
	for _, m := range r.movies {
		if filter.Status != "" && string(m.Status) != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(filter.Search)) {
			continue
		}
		all = append(all, cloneMovie(m))
	}
	return all, int64(len(all)), nil
}

func (r *stubMovieRepo) CountByStatus(_ context.Context) (map[domain.MovieStatus]int64, error) {
	counts := make(map[domain.MovieStatus]int64)
	for _, m := range r.movies {
		counts[m.Status]++
	}
	return counts, nil
}

func TestMovieService_CreateDefaultsToAnnounced(t *testing.T) {
	svc := NewMovieService(newStubMovieRepo(), zerolog.Nop())

	movie, err := svc.CreateMovie(context.Background(), ports.MovieInput{Title: "Night Train"})
	if err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	if movie.Status != domain.MovieAnnounced {
		t.Errorf("status = %s, want announced", movie.Status)
	}
	if movie.ID == "" {
		t.Error("movie should be assigned an id")
	}
}

func TestMovieService_CreateRejectsUnknownStatus(t *testing.T) {
	svc := NewMovieService(newStubMovieRepo(), zerolog.Nop())
	_, err := svc.CreateMovie(context.Background(), ports.MovieInput{Title: "x", Status: "cancelled"})
	if !errors.Is(err, domain.ErrUnknownMovieStatus) {
		t.Fatalf("err = %v, want ErrUnknownMovieStatus", err)
	}
}

func TestMovieService_UpdateKeepsStatusWhenOmitted(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, zerolog.Nop())
	movie, err := svc.CreateMovie(context.Background(), ports.MovieInput{Title: "Night Train", Status: "released"})
	if err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}

	updated, err := svc.UpdateMovie(context.Background(), movie.ID, ports.MovieInput{Title: "Night Train (Director's Cut)"})
	if err != nil {
		t.Fatalf("UpdateMovie: %v", err)
	}
	if updated.Title != "Night Train (Director's Cut)" {
		t.Errorf("title = %s", updated.Title)
	}
	if updated.Status != domain.MovieReleased {
		t.Errorf("omitted status must not reset the stored one, got %s", updated.Status)
	}
}

func TestMovieService_UpdateUnknownMovie(t *testing.T) {
	svc := NewMovieService(newStubMovieRepo(), zerolog.Nop())
	_, err := svc.UpdateMovie(context.Background(), "ghost", ports.MovieInput{Title: "x"})
	if !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("err = %v, want ErrMovieNotFound", err)
	}
}

func TestMovieService_ListClampsPagination(t *testing.T) {
	repo := newStubMovieRepo()
	svc := NewMovieService(repo, zerolog.Nop())
	if _, err := svc.CreateMovie(context.Background(), ports.MovieInput{Title: "Night Train"}); err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}

	result, err := svc.ListMovies(context.Background(), ports.ListMoviesInput{Page: -3, Limit: 100000})
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if result.Page != 1 {
		t.Errorf("page = %d, want 1", result.Page)
	}
	if result.Limit != maxPageLimit {
		t.Errorf("limit = %d, want %d", result.Limit, maxPageLimit)
	}
	if result.Total != 1 || result.TotalPages != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestAssetService_CreateRequiresExistingMovie(t *testing.T) {
	movies := newStubMovieRepo()
	svc := NewAssetService(newStubAssetRepo(), movies, zerolog.Nop())

	_, err := svc.CreateAsset(context.Background(), ports.AssetInput{
		MovieID: "ghost",
		Kind:    "captions",
	})
	if !errors.Is(err, domain.ErrMovieNotFound) {
		t.Fatalf("err = %v, want ErrMovieNotFound", err)
	}
}

func TestAssetService_NewStorageKeyBumpsVersion(t *testing.T) {
	movies := newStubMovieRepo()
	movie := &domain.Movie{ID: "m1", Title: "Night Train", Status: domain.MovieReleased}
	if err := movies.Create(context.Background(), movie); err != nil {
		t.Fatalf("seeding movie: %v", err)
	}
	svc := NewAssetService(newStubAssetRepo(), movies, zerolog.Nop())

	asset, err := svc.CreateAsset(context.Background(), ports.AssetInput{
		MovieID:    "m1",
		Kind:       "audio_description",
		Language:   "en",
		StorageKey: "ad/m1/v1.wav",
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if asset.Version != 1 || asset.Status != domain.AssetDraft {
		t.Fatalf("new asset = %+v, want version 1 draft", asset)
	}

	same, err := svc.UpdateAsset(context.Background(), asset.ID, ports.AssetInput{
		Kind:       "audio_description",
		Language:   "en",
		StorageKey: "ad/m1/v1.wav",
	})
	if err != nil {
		t.Fatalf("UpdateAsset: %v", err)
	}
	if same.Version != 1 {
		t.Errorf("unchanged storage key must not bump the version, got %d", same.Version)
	}

	bumped, err := svc.UpdateAsset(context.Background(), asset.ID, ports.AssetInput{
		Kind:       "audio_description",
		Language:   "en",
		StorageKey: "ad/m1/v2.wav",
	})
	if err != nil {
		t.Fatalf("UpdateAsset: %v", err)
	}
	if bumped.Version != 2 {
		t.Errorf("version = %d, want 2 after a new storage key", bumped.Version)
	}
}

type stubAssetRepo struct {
	assets map[string]*domain.Asset
}

func newStubAssetRepo() *stubAssetRepo {
	return &stubAssetRepo{assets: make(map[string]*domain.Asset)}
}

func cloneAsset(a *domain.Asset) *domain.Asset {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAssetRepo) Create(_ context.Context, a *domain.Asset) error {
	r.assets[a.ID] = cloneAsset(a)
	return nil
}

func (r *stubAssetRepo) FindByID(_ context.Context, id string) (*domain.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return cloneAsset(a), nil
}

func (r *stubAssetRepo) Update(_ context.Context, a *domain.Asset) error {
	if _, ok := r.assets[a.ID]; !ok {
		return domain.ErrAssetNotFound
	}
	r.assets[a.ID] = cloneAsset(a)
	return nil
}

func (r *stubAssetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.assets[id]; !ok {
		return domain.ErrAssetNotFound
	}
	delete(r.assets, id)
	return nil
}

func (r *stubAssetRepo) List(_ context.Context, filter ports.ListAssetsFilter) ([]*domain.Asset, int64, error) {
	var all []*domain.Asset
	for _, a := range r.assets {
		if filter.MovieID != "" && a.MovieID != filter.MovieID {
			continue
		}
		all = append(all, cloneAsset(a))
	}
	return all, int64(len(all)), nil
}

func (r *stubAssetRepo) StatsByKind(_ context.Context) ([]ports.AssetStats, error) {
	byKind := make(map[domain.AssetKind]*ports.AssetStats)
	for _, a := range r.assets {
		s, ok := byKind[a.Kind]
		if !ok {
			s = &ports.AssetStats{Kind: a.Kind}
			byKind[a.Kind] = s
		}
		s.Count++
		s.TotalBytes += a.SizeBytes
	}
	out := make([]ports.AssetStats, 0, len(byKind))
	for _, s := range byKind {
		out = append(out, *s)
	}
	return out, nil
}
