package service

import (
	"context"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// ProviderDeps carries everything the default card providers read from.
type ProviderDeps struct {
	Users        ports.AuthRepository
	Movies       ports.MovieRepository
	Distributors ports.DistributorRepository
	Personnel    ports.PersonnelRepository
	Assets       ports.AssetRepository
	Guidelines   ports.GuidelineRepository
	Tasks        ports.TaskRepository
	Backups      ports.BackupService
	Allowlist    ports.AllowlistService
}

// RegisterDefaultProviders wires the content provider of every registry card.
// Provider payloads are loose documents; shapes here match what the
// dashboard client renders per card type.
func RegisterDefaultProviders(dash *DashboardService, deps ProviderDeps) {
	dash.RegisterPerUserProvider("profile", func(ctx context.Context, userID string) (ports.CardBody, error) {
		user, err := deps.Users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return ports.CardBody{
			"username":     user.Username,
			"display_name": user.DisplayName,
			"email":        user.Email,
			"role":         user.Role,
		}, nil
	})

	dash.RegisterProvider("movie", func(ctx context.Context, _ string) (ports.CardBody, error) {
		counts, err := deps.Movies.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}
		var total int64
		byStatus := make(map[string]int64, len(counts))
		for status, n := range counts {
			byStatus[string(status)] = n
			total += n
		}
		return ports.CardBody{"total": total, "by_status": byStatus}, nil
	})

	dash.RegisterProvider("distributor", func(ctx context.Context, _ string) (ports.CardBody, error) {
		n, err := deps.Distributors.Count(ctx)
		if err != nil {
			return nil, err
		}
		return ports.CardBody{"total": n}, nil
	})

	dash.RegisterProvider("personnel", func(ctx context.Context, _ string) (ports.CardBody, error) {
		counts, err := deps.Personnel.CountByKind(ctx)
		if err != nil {
			return nil, err
		}
		var total int64
		byKind := make(map[string]int64, len(counts))
		for kind, n := range counts {
			byKind[string(kind)] = n
			total += n
		}
		return ports.CardBody{"total": total, "by_kind": byKind}, nil
	})

	dash.RegisterProvider("asset", func(ctx context.Context, _ string) (ports.CardBody, error) {
		stats, err := deps.Assets.StatsByKind(ctx)
		if err != nil {
			return nil, err
		}
		var total int64
		byKind := make(map[string]int64, len(stats))
		for _, st := range stats {
			byKind[string(st.Kind)] = st.Count
			total += st.Count
		}
		return ports.CardBody{"total": total, "by_kind": byKind}, nil
	})

	dash.RegisterProvider("storage", func(ctx context.Context, _ string) (ports.CardBody, error) {
		stats, err := deps.Assets.StatsByKind(ctx)
		if err != nil {
			return nil, err
		}
		var total int64
		byKind := make(map[string]int64, len(stats))
		for _, st := range stats {
			byKind[string(st.Kind)] = st.TotalBytes
			total += st.TotalBytes
		}
		return ports.CardBody{"total_bytes": total, "bytes_by_kind": byKind}, nil
	})

	dash.RegisterProvider("workflow", func(ctx context.Context, _ string) (ports.CardBody, error) {
		counts, err := deps.Tasks.CountByStage(ctx)
		if err != nil {
			return nil, err
		}
		byStage := make(map[string]int64, len(domain.Stages))
		for _, stage := range domain.Stages {
			byStage[string(stage)] = counts[stage]
		}
		return ports.CardBody{"by_stage": byStage}, nil
	})

	dash.RegisterProvider("backup", func(ctx context.Context, _ string) (ports.CardBody, error) {
		archives, _, err := deps.Backups.List(ctx)
		if err != nil {
			return nil, err
		}
		body := ports.CardBody{"archive_count": len(archives)}
		if len(archives) > 0 {
			body["last_backup"] = archives[0].CreatedAt
			body["last_size_bytes"] = archives[0].SizeBytes
		}
		return body, nil
	})

	dash.RegisterProvider("security", func(ctx context.Context, _ string) (ports.CardBody, error) {
		entries, err := deps.Allowlist.List(ctx)
		if err != nil {
			return nil, err
		}
		return ports.CardBody{
			"allowlist_entries": len(entries),
			"enforced":          deps.Allowlist.Enforced(),
		}, nil
	})
}
