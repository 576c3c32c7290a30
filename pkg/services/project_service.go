package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"studio-site/pkg/logging"
	"studio-site/pkg/metrics"
	"studio-site/pkg/models"
)

const projectsCacheKey = "projects"

// ErrProjectNotFound is returned when no project has the requested ID
var ErrProjectNotFound = errors.New("project not found")

// ProjectService discovers projects from a PhotoSource and keeps the listing
// for the lifetime of the process.
type ProjectService struct {
	source  PhotoSource
	cache   *cache.Cache
	group   singleflight.Group
	shuffle func(n int, swap func(i, j int))
	log     zerolog.Logger
}

// NewProjectService creates a ProjectService reading from source
func NewProjectService(source PhotoSource) *ProjectService {
	return &ProjectService{
		source:  source,
		cache:   cache.New(cache.NoExpiration, 0),
		shuffle: rand.Shuffle,
		log:     logging.WithComponent("projects"),
	}
}

// ListProjects returns all projects, newest first
func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	if cached, found := s.cache.Get(projectsCacheKey); found {
		return cached.([]models.Project), nil
	}

	// The scan is shared and cached, so one caller going away must not cut it short
	scanCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(projectsCacheKey, func() (interface{}, error) {
		if cached, found := s.cache.Get(projectsCacheKey); found {
			return cached, nil
		}
		projects, err := s.scan(scanCtx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(projectsCacheKey, projects, cache.NoExpiration)
		return projects, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Project), nil
}

// GetProject returns the project with the given ID
func (s *ProjectService) GetProject(ctx context.Context, id string) (models.Project, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return models.Project{}, err
	}
	for _, project := range projects {
		if project.ID == id {
			return project, nil
		}
	}
	return models.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}

// HeroImages returns up to n photos drawn from every project in random order.
// n <= 0 returns all of them.
func (s *ProjectService) HeroImages(ctx context.Context, n int) ([]string, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	var images []string
	for _, project := range projects {
		images = append(images, project.Images...)
	}
	s.shuffle(len(images), func(i, j int) {
		images[i], images[j] = images[j], images[i]
	})

	if n > 0 && len(images) > n {
		images = images[:n]
	}
	return images, nil
}

func (s *ProjectService) scan(ctx context.Context) ([]models.Project, error) {
	s.log.Info().Msg("scanning project folders")
	metrics.RecordProjectScan()

	folders, err := s.source.Folders(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list project folders")
		return nil, fmt.Errorf("list project folders: %w", err)
	}

	projects := make([]models.Project, 0, len(folders))
	for _, folder := range folders {
		info := ParseFolder(folder)

		photos, err := s.source.Photos(ctx, folder)
		if err != nil {
			s.log.Warn().Err(err).Str("folder", folder).Msg("failed to read project photos")
			photos = nil
		}
		sort.Slice(photos, func(i, j int) bool {
			return naturalLess(photos[i].Path, photos[j].Path)
		})
		images := make([]string, 0, len(photos))
		for _, photo := range photos {
			images = append(images, photo.URL)
		}

		project := models.Project{
			ID:     info.ID,
			Name:   info.Name,
			Year:   info.Year,
			Folder: folder,
			Images: images,
		}
		if len(images) > 0 {
			project.Cover = images[0]
		}
		projects = append(projects, project)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.Year != b.Year {
			// Unknown years (0) fall to the end.
			if a.Year == 0 || b.Year == 0 {
				return b.Year == 0
			}
			return a.Year > b.Year
		}
		return naturalLess(a.Name, b.Name)
	})

	s.log.Info().Int("projects", len(projects)).Msg("project folders scanned")
	return projects, nil
}
