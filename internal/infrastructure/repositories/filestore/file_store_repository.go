package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/packager/internal/domain/entities"
	"github.com/rios0rios0/packager/internal/domain/repositories"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// storeFile is the YAML document kept on disk.
type storeFile struct {
	Components    []componentRecord  `yaml:"components"`
	Projects      []projectRecord    `yaml:"projects"`
	KnownVersions map[int64][]string `yaml:"known_versions,omitempty"`
}

type componentRecord struct {
	ID         int64            `yaml:"id"`
	Name       string           `yaml:"name"`
	Version    string           `yaml:"version"`
	Repository repositoryRecord `yaml:"repository"`
}

type repositoryRecord struct {
	Kind string `yaml:"kind,omitempty"`
	URL  string `yaml:"url"`
}

type projectRecord struct {
	ID         int64   `yaml:"id"`
	Name       string  `yaml:"name"`
	Components []int64 `yaml:"components"`
}

// FileStoreRepository keeps components, projects and the known-version
// ledger in a single YAML file. Every recorded version is written through
// to disk. It is safe for concurrent use within one process.
type FileStoreRepository struct {
	path string
	mu   sync.RWMutex
	data storeFile
}

// NewFileStoreRepository loads the store at settings.Path. A missing file
// yields an empty store that is created on the first write.
func NewFileStoreRepository(
	_ context.Context,
	settings entities.StoreSettings,
) (repositories.StoreRepository, error) {
	store := &FileStoreRepository{path: settings.Path}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (it *FileStoreRepository) load() error {
	content, err := os.ReadFile(it.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Store file %q does not exist yet, starting empty", it.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read store file %q: %w", it.path, err)
	}
	if unmarshalErr := yaml.Unmarshal(content, &it.data); unmarshalErr != nil {
		return fmt.Errorf("failed to parse store file %q: %w", it.path, unmarshalErr)
	}
	return nil
}

// save writes the document to a temporary file and renames it over the
// store so readers never see a partial file. Callers hold the write lock.
func (it *FileStoreRepository) save() error {
	content, err := yaml.Marshal(&it.data)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(it.path), dirMode); mkdirErr != nil {
		return fmt.Errorf("failed to create store directory: %w", mkdirErr)
	}

	tmp := it.path + ".tmp"
	if writeErr := os.WriteFile(tmp, content, fileMode); writeErr != nil {
		return fmt.Errorf("failed to write store file: %w", writeErr)
	}
	if renameErr := os.Rename(tmp, it.path); renameErr != nil {
		return fmt.Errorf("failed to replace store file: %w", renameErr)
	}
	return nil
}

func (it *FileStoreRepository) Components(_ context.Context) ([]entities.Component, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()

	components := make([]entities.Component, 0, len(it.data.Components))
	for _, record := range it.data.Components {
		current, err := entities.ParseVersion(record.Version)
		if err != nil {
			return nil, fmt.Errorf("component %q has an invalid pinned version: %w", record.Name, err)
		}
		components = append(components, entities.Component{
			ID:             record.ID,
			Name:           record.Name,
			CurrentVersion: current,
			Repository: entities.Repository{
				Kind: entities.RepositoryKind(record.Repository.Kind),
				URL:  record.Repository.URL,
			},
		})
	}
	return components, nil
}

func (it *FileStoreRepository) KnownVersions(
	_ context.Context,
	component entities.Component,
) ([]entities.Version, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()

	raw := it.data.KnownVersions[component.ID]
	versions := make([]entities.Version, 0, len(raw))
	for _, text := range raw {
		version, err := entities.ParseVersion(text)
		if err != nil {
			return nil, fmt.Errorf("component %q has an invalid known version: %w", component.Name, err)
		}
		versions = append(versions, version)
	}
	return versions, nil
}

func (it *FileStoreRepository) AddKnownVersion(
	_ context.Context,
	component entities.Component,
	version entities.Version,
) error {
	it.mu.Lock()
	defer it.mu.Unlock()

	text := version.String()
	if slices.Contains(it.data.KnownVersions[component.ID], text) {
		return nil
	}

	if it.data.KnownVersions == nil {
		it.data.KnownVersions = make(map[int64][]string)
	}
	previous := it.data.KnownVersions[component.ID]
	it.data.KnownVersions[component.ID] = append(slices.Clone(previous), text)
	if err := it.save(); err != nil {
		it.data.KnownVersions[component.ID] = previous
		return err
	}
	return nil
}

func (it *FileStoreRepository) ProjectsWith(_ context.Context, componentID int64) ([]entities.Project, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()

	var projects []entities.Project
	for _, record := range it.data.Projects {
		if slices.Contains(record.Components, componentID) {
			projects = append(projects, entities.Project{ID: record.ID, Name: record.Name})
		}
	}
	return projects, nil
}

func (it *FileStoreRepository) Close() error { return nil }
