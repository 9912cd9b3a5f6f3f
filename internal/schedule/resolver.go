package schedule

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Effective adalah jadwal yang berlaku untuk satu karyawan: hasil lookup
// atau default sistem. Semua komponen perhitungan (classifier, report,
// payroll) hanya mengenal tipe ini, bukan entity persistennya.
type Effective struct {
	StartTime     string  // HH:MM
	EndTime       string  // HH:MM
	ExpectedHours float64
	IsDefault     bool
}

// Defaults dibaca dari env sekali di app wiring dan dioper eksplisit ke
// sini, bukan global tersembunyi, supaya test bisa pakai default lain.
type Defaults struct {
	StartTime     string
	EndTime       string
	ExpectedHours float64
}

type Resolver struct {
	repo     Repository
	defaults Defaults
}

func NewResolver(repo Repository, defaults Defaults) *Resolver {
	return &Resolver{repo: repo, defaults: defaults}
}

// Resolve mengembalikan jadwal efektif karyawan. Tidak adanya jadwal
// bukan error: karyawan baru memang belum punya konfigurasi, default
// sistem yang berlaku.
func (r *Resolver) Resolve(ctx context.Context, employeeID string) (Effective, error) {
	s, err := r.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Effective{
				StartTime:     r.defaults.StartTime,
				EndTime:       r.defaults.EndTime,
				ExpectedHours: r.defaults.ExpectedHours,
				IsDefault:     true,
			}, nil
		}
		return Effective{}, err
	}

	return Effective{
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		ExpectedHours: s.ExpectedHours,
	}, nil
}
