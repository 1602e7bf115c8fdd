// Package seed loads reference data and accounts from a YAML fixture.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// File is the fixture layout.
type File struct {
	Departments    []Department    `yaml:"departments"`
	Administrators []Administrator `yaml:"administrators"`
	Users          []User          `yaml:"users"`
}

type Department struct {
	ID          int64  `yaml:"id"`
	Description string `yaml:"description"`
}

type Administrator struct {
	Name         string           `yaml:"name"`
	Email        string           `yaml:"email"`
	Password     string           `yaml:"password"`
	Role         domain.AdminRole `yaml:"role"`
	DepartmentID int64            `yaml:"department_id"`
}

type User struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Password   string `yaml:"password"`
	Address    string `yaml:"address"`
	City       string `yaml:"city"`
	Province   string `yaml:"province"`
	NationalID string `yaml:"national_id"`
	Mobile     string `yaml:"mobile"`
}

// Result counts what Apply wrote. Accounts whose email already exists are skipped.
type Result struct {
	Departments    int
	Administrators int
	Users          int
	Skipped        int
}

// Directory stores departments and administrators.
type Directory interface {
	SaveDepartment(ctx context.Context, id int64, description string) (*domain.Department, error)
	CreateAdministrator(ctx context.Context, input service.CreateAdministratorInput) (*domain.Administrator, error)
}

// Registrar creates ticket owner accounts.
type Registrar interface {
	RegisterUser(ctx context.Context, input service.RegisterUserInput) (*service.LoginResult, error)
}

// Load reads and parses a fixture file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a fixture, rejecting unknown keys.
func Parse(raw []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// Apply writes departments first so administrators can reference them.
func Apply(ctx context.Context, f *File, dir Directory, reg Registrar) (Result, error) {
	var res Result
	for _, d := range f.Departments {
		if _, err := dir.SaveDepartment(ctx, d.ID, d.Description); err != nil {
			return res, fmt.Errorf("department %d: %w", d.ID, err)
		}
		res.Departments++
	}
	for _, a := range f.Administrators {
		_, err := dir.CreateAdministrator(ctx, service.CreateAdministratorInput{
			Name:         a.Name,
			Email:        a.Email,
			Password:     a.Password,
			Role:         a.Role,
			DepartmentID: a.DepartmentID,
		})
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("administrator %s: %w", a.Email, err)
		default:
			res.Administrators++
		}
	}
	for _, u := range f.Users {
		_, err := reg.RegisterUser(ctx, service.RegisterUserInput{
			Name:       u.Name,
			Email:      u.Email,
			Password:   u.Password,
			Address:    u.Address,
			City:       u.City,
			Province:   u.Province,
			NationalID: u.NationalID,
			Mobile:     u.Mobile,
		})
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("user %s: %w", u.Email, err)
		default:
			res.Users++
		}
	}
	return res, nil
}
