package repository

import (
	"context"
	"time"

	"vet-clinic-analytics/internal/domain/entity"
	domainRepo "vet-clinic-analytics/internal/domain/repository"
	"vet-clinic-analytics/pkg/apperror"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type analyticsRepository struct{}

func NewAnalyticsRepository() domainRepo.AnalyticsRepository {
	return &analyticsRepository{}
}

func (r *analyticsRepository) CountPets(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Pet{}).Count(&count).Error
	return count, apperror.WrapDataSource("count pets", err)
}

func (r *analyticsRepository) CountClients(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Client{}).Count(&count).Error
	return count, apperror.WrapDataSource("count clients", err)
}

func (r *analyticsRepository) CountAppointments(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).Count(&count).Error
	return count, apperror.WrapDataSource("count appointments", err)
}

func (r *analyticsRepository) CountAppointmentsOn(ctx context.Context, db *gorm.DB, day time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("DATE(fechareserva) = ?", day.Format(dateLayout)).
		Count(&count).Error
	return count, apperror.WrapDataSource("count appointments for day", err)
}

func (r *analyticsRepository) AppointmentsByMonth(ctx context.Context, db *gorm.DB, year int) ([]domainRepo.MonthlyAppointmentRow, error) {
	var rows []domainRepo.MonthlyAppointmentRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(MONTH FROM fechareserva)::int AS month,
			EXTRACT(YEAR FROM fechareserva)::int AS year,
			COUNT(*) AS total,
			COUNT(CASE WHEN estado = ? THEN 1 END) AS completed,
			COUNT(CASE WHEN estado = ? THEN 1 END) AS cancelled
		FROM cita
		WHERE EXTRACT(YEAR FROM fechareserva) = ?
		GROUP BY 1, 2
		ORDER BY 1 ASC`,
		entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled, year,
	).Scan(&rows).Error
	if err != nil {
		return nil, apperror.WrapDataSource("appointments by month", err)
	}
	return rows, nil
}

func (r *analyticsRepository) PetsBySpecies(ctx context.Context, db *gorm.DB) ([]domainRepo.SpeciesCountRow, error) {
	var rows []domainRepo.SpeciesCountRow
	err := db.WithContext(ctx).Raw(`
		SELECT e.descripcion AS species, COUNT(m.id) AS total
		FROM especie e
		LEFT JOIN mascota m ON m.especie_id = e.id
		GROUP BY e.id, e.descripcion
		ORDER BY total DESC, e.descripcion ASC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, apperror.WrapDataSource("pets by species", err)
	}
	return rows, nil
}

// DoctorPerformance keeps doctors with at least one appointment in the
// period via the inner join. DISTINCT counts guard against the diagnosis
// fan-out inflating appointment totals.
func (r *analyticsRepository) DoctorPerformance(ctx context.Context, db *gorm.DB, month, year int) ([]domainRepo.DoctorPerformanceRow, error) {
	var rows []domainRepo.DoctorPerformanceRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			d.id AS doctor_id,
			CONCAT(d.nombre, ' ', d.apellido) AS doctor_name,
			COUNT(DISTINCT c.id) AS total,
			COUNT(DISTINCT CASE WHEN c.estado = ? THEN c.id END) AS completed,
			COUNT(DISTINCT diag.id) AS diagnoses
		FROM doctor d
		JOIN cita c ON c.doctor_id = d.id
			AND EXTRACT(MONTH FROM c.fechareserva) = ?
			AND EXTRACT(YEAR FROM c.fechareserva) = ?
		LEFT JOIN diagnostico diag ON diag.cita_id = c.id
		GROUP BY d.id, d.nombre, d.apellido
		ORDER BY total DESC, d.id ASC`,
		entity.AppointmentStatusCompleted, month, year,
	).Scan(&rows).Error
	if err != nil {
		return nil, apperror.WrapDataSource("doctor performance", err)
	}
	return rows, nil
}

func (r *analyticsRepository) CountVaccinations(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.VaccinationEntry{}).Count(&count).Error
	return count, apperror.WrapDataSource("count vaccinations", err)
}

func (r *analyticsRepository) CountVaccinationsOverdue(ctx context.Context, db *gorm.DB, today time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.VaccinationEntry{}).
		Where("proximavacunacion IS NOT NULL AND proximavacunacion < ?", today.Format(dateLayout)).
		Count(&count).Error
	return count, apperror.WrapDataSource("count overdue vaccinations", err)
}

func (r *analyticsRepository) CountVaccinationsDueWithin(ctx context.Context, db *gorm.DB, today time.Time, days int) (int64, error) {
	limit := today.AddDate(0, 0, days)
	var count int64
	err := db.WithContext(ctx).Model(&entity.VaccinationEntry{}).
		Where("proximavacunacion IS NOT NULL AND proximavacunacion >= ? AND proximavacunacion <= ?",
			today.Format(dateLayout), limit.Format(dateLayout)).
		Count(&count).Error
	return count, apperror.WrapDataSource("count upcoming vaccinations", err)
}

func (r *analyticsRepository) TopVaccines(ctx context.Context, db *gorm.DB, limit int) ([]domainRepo.NameCountRow, error) {
	var rows []domainRepo.NameCountRow
	err := db.WithContext(ctx).Raw(`
		SELECT v.descripcion AS name, COUNT(dv.id) AS total
		FROM vacuna v
		JOIN detalle_vacunacion dv ON dv.vacuna_id = v.id
		GROUP BY v.id, v.descripcion
		ORDER BY total DESC, v.descripcion ASC
		LIMIT ?`,
		limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, apperror.WrapDataSource("top vaccines", err)
	}
	return rows, nil
}

// VaccinationAlerts returns every entry due on or before the given date.
// Entries without a scheduled next dose are excluded here, not in the
// alert engine. Final overdue-first ordering happens in the engine.
func (r *analyticsRepository) VaccinationAlerts(ctx context.Context, db *gorm.DB, until time.Time) ([]domainRepo.VaccinationAlertRow, error) {
	var rows []domainRepo.VaccinationAlertRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			m.id AS pet_id,
			m.nombre AS pet_name,
			CONCAT(cl.nombre, ' ', cl.apellido) AS owner_name,
			cl.telefono AS owner_phone,
			v.descripcion AS vaccine,
			dv.fechavacunacion AS administered_at,
			dv.proximavacunacion AS next_due_date
		FROM detalle_vacunacion dv
		JOIN carnet_vacunacion cv ON dv.carnet_vacunacion_id = cv.id
		JOIN mascota m ON cv.mascota_id = m.id
		JOIN cliente cl ON m.cliente_id = cl.id
		JOIN vacuna v ON dv.vacuna_id = v.id
		WHERE dv.proximavacunacion IS NOT NULL
			AND dv.proximavacunacion <= ?
		ORDER BY dv.proximavacunacion ASC`,
		until.Format(dateLayout),
	).Scan(&rows).Error
	if err != nil {
		return nil, apperror.WrapDataSource("vaccination alerts", err)
	}
	return rows, nil
}

func (r *analyticsRepository) AppointmentStatusBreakdown(ctx context.Context, db *gorm.DB, filter domainRepo.PeriodFilter) (domainRepo.StatusBreakdownRow, error) {
	var row domainRepo.StatusBreakdownRow
	query := db.WithContext(ctx).Model(&entity.Appointment{}).
		Select(`COUNT(*) AS total,
			COUNT(CASE WHEN estado = ? THEN 1 END) AS pending,
			COUNT(CASE WHEN estado = ? THEN 1 END) AS confirmed,
			COUNT(CASE WHEN estado = ? THEN 1 END) AS completed,
			COUNT(CASE WHEN estado = ? THEN 1 END) AS cancelled`,
			entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed,
			entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled).
		Where("DATE(fechareserva) BETWEEN ? AND ?", filter.Start.Format(dateLayout), filter.End.Format(dateLayout))
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	err := query.Scan(&row).Error
	return row, apperror.WrapDataSource("appointment status breakdown", err)
}

func (r *analyticsRepository) CountCompletedAppointments(ctx context.Context, db *gorm.DB, filter domainRepo.PeriodFilter) (int64, error) {
	var count int64
	query := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("estado = ?", entity.AppointmentStatusCompleted).
		Where("DATE(fechareserva) BETWEEN ? AND ?", filter.Start.Format(dateLayout), filter.End.Format(dateLayout))
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	err := query.Count(&count).Error
	return count, apperror.WrapDataSource("count completed appointments", err)
}

func (r *analyticsRepository) CountAppointmentsBetween(ctx context.Context, db *gorm.DB, filter domainRepo.PeriodFilter) (int64, error) {
	var count int64
	query := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("DATE(fechareserva) BETWEEN ? AND ?", filter.Start.Format(dateLayout), filter.End.Format(dateLayout))
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.Species != nil {
		query = query.
			Joins("JOIN mascota ON mascota.id = cita.mascota_id").
			Joins("JOIN especie ON especie.id = mascota.especie_id").
			Where("especie.descripcion = ?", *filter.Species)
	}
	err := query.Count(&count).Error
	return count, apperror.WrapDataSource("count appointments in period", err)
}

func (r *analyticsRepository) TopDiagnoses(ctx context.Context, db *gorm.DB, filter domainRepo.PeriodFilter, limit int) ([]domainRepo.NameCountRow, error) {
	var rows []domainRepo.NameCountRow
	query := db.WithContext(ctx).Model(&entity.Diagnosis{}).
		Select("diagnostico.descripcion AS name, COUNT(*) AS total").
		Joins("JOIN cita ON cita.id = diagnostico.cita_id").
		Where("DATE(cita.fechareserva) BETWEEN ? AND ?", filter.Start.Format(dateLayout), filter.End.Format(dateLayout))
	if filter.DoctorID != nil {
		query = query.Where("cita.doctor_id = ?", *filter.DoctorID)
	}
	if filter.Species != nil {
		query = query.
			Joins("JOIN mascota ON mascota.id = cita.mascota_id").
			Joins("JOIN especie ON especie.id = mascota.especie_id").
			Where("especie.descripcion = ?", *filter.Species)
	}
	err := query.
		Group("diagnostico.descripcion").
		Order("total DESC, name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.WrapDataSource("top diagnoses", err)
	}
	return rows, nil
}

func (r *analyticsRepository) TopTreatments(ctx context.Context, db *gorm.DB, filter domainRepo.PeriodFilter, limit int) ([]domainRepo.NameCountRow, error) {
	var rows []domainRepo.NameCountRow
	query := db.WithContext(ctx).Model(&entity.Treatment{}).
		Select("tratamiento.nombre AS name, COUNT(*) AS total").
		Joins("JOIN diagnostico ON diagnostico.id = tratamiento.diagnostico_id").
		Joins("JOIN cita ON cita.id = diagnostico.cita_id").
		Where("DATE(cita.fechareserva) BETWEEN ? AND ?", filter.Start.Format(dateLayout), filter.End.Format(dateLayout))
	if filter.DoctorID != nil {
		query = query.Where("cita.doctor_id = ?", *filter.DoctorID)
	}
	if filter.Species != nil {
		query = query.
			Joins("JOIN mascota ON mascota.id = cita.mascota_id").
			Joins("JOIN especie ON especie.id = mascota.especie_id").
			Where("especie.descripcion = ?", *filter.Species)
	}
	err := query.
		Group("tratamiento.nombre").
		Order("total DESC, name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.WrapDataSource("top treatments", err)
	}
	return rows, nil
}

func (r *analyticsRepository) CountVaccinationsBetween(ctx context.Context, db *gorm.DB, start, end time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.VaccinationEntry{}).
		Where("fechavacunacion BETWEEN ? AND ?", start.Format(dateLayout), end.Format(dateLayout)).
		Count(&count).Error
	return count, apperror.WrapDataSource("count vaccinations in period", err)
}
