// Package seed loads developers and projects from a TOML file. The HTTP API
// never creates these rows, so this is how a fresh database gets its team.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/fastygo/teamtasks/domain"
	"github.com/fastygo/teamtasks/repository"
)

type File struct {
	Developers []Developer `toml:"developers"`
	Projects   []Project   `toml:"projects"`
}

type Developer struct {
	FirstName string `toml:"first_name"`
	LastName  string `toml:"last_name"`
	Email     string `toml:"email"`
	// Active defaults to true when omitted.
	Active *bool `toml:"active"`
}

type Project struct {
	Name       string     `toml:"name"`
	ClientName string     `toml:"client_name"`
	Status     string     `toml:"status"`
	StartDate  time.Time  `toml:"start_date"`
	EndDate    *time.Time `toml:"end_date"`
}

// Result counts the rows written by Apply.
type Result struct {
	Developers int
	Projects   int
}

// Load reads and validates a seed file from disk.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses TOML and validates it. Unknown keys are rejected.
func Decode(r io.Reader) (*File, error) {
	var file File
	meta, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("seed: parse: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("seed: unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate checks every record so a bad file writes nothing.
func (f *File) Validate() error {
	var errs []error
	emails := make(map[string]int, len(f.Developers))
	for i, d := range f.Developers {
		if strings.TrimSpace(d.FirstName) == "" || strings.TrimSpace(d.LastName) == "" {
			errs = append(errs, fmt.Errorf("developers[%d]: first_name and last_name are required", i))
		}
		addr, err := mail.ParseAddress(d.Email)
		if err != nil || addr.Address != strings.TrimSpace(d.Email) {
			errs = append(errs, fmt.Errorf("developers[%d]: invalid email %q", i, d.Email))
			continue
		}
		key := strings.ToLower(addr.Address)
		if prev, ok := emails[key]; ok {
			errs = append(errs, fmt.Errorf("developers[%d]: email %q already used by developers[%d]", i, d.Email, prev))
		}
		emails[key] = i
	}

	names := make(map[string]int, len(f.Projects))
	for i, p := range f.Projects {
		name := strings.TrimSpace(p.Name)
		if name == "" || strings.TrimSpace(p.ClientName) == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: name and client_name are required", i))
		}
		if prev, ok := names[name]; ok && name != "" {
			errs = append(errs, fmt.Errorf("projects[%d]: name %q already used by projects[%d]", i, name, prev))
		}
		names[name] = i
		if _, err := domain.ParseProjectStatus(p.Status); err != nil {
			errs = append(errs, fmt.Errorf("projects[%d]: %w", i, err))
		}
		if p.StartDate.IsZero() {
			errs = append(errs, fmt.Errorf("projects[%d]: start_date is required", i))
		} else if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
			errs = append(errs, fmt.Errorf("projects[%d]: end_date is before start_date", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("seed: invalid file: %w", errors.Join(errs...))
	}
	return nil
}

// Apply upserts developers by email and projects by name.
func Apply(ctx context.Context, f *File, developers repository.DeveloperRepository, projects repository.ProjectRepository, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result
	if err := f.Validate(); err != nil {
		return res, err
	}

	for _, d := range f.Developers {
		dev := &domain.Developer{
			FirstName: strings.TrimSpace(d.FirstName),
			LastName:  strings.TrimSpace(d.LastName),
			Email:     strings.TrimSpace(d.Email),
			IsActive:  d.Active == nil || *d.Active,
		}
		if err := developers.Upsert(ctx, dev); err != nil {
			return res, fmt.Errorf("seed developer %s: %w", dev.Email, err)
		}
		logger.Debug("developer seeded", zap.Int64("developer_id", dev.ID), zap.String("email", dev.Email))
		res.Developers++
	}

	for _, p := range f.Projects {
		project := &domain.Project{
			Name:       strings.TrimSpace(p.Name),
			ClientName: strings.TrimSpace(p.ClientName),
			Status:     domain.ProjectStatus(p.Status),
			StartDate:  asDate(p.StartDate),
		}
		if p.EndDate != nil {
			end := asDate(*p.EndDate)
			project.EndDate = &end
		}
		if err := projects.Upsert(ctx, project); err != nil {
			return res, fmt.Errorf("seed project %s: %w", project.Name, err)
		}
		logger.Debug("project seeded", zap.Int64("project_id", project.ID), zap.String("name", project.Name))
		res.Projects++
	}

	logger.Info("seed applied", zap.Int("developers", res.Developers), zap.Int("projects", res.Projects))
	return res, nil
}

// asDate keeps the calendar date of a TOML local date regardless of process timezone.
func asDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
