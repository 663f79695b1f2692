package postgres

import (
	"context"
	"fmt"

	"github.com/emclarke/pharmacy-rota/pkg/core/rota"
)

// GetPharmacists retrieves the full staff roster, ordered by ID so
// generation snapshots are reproducible.
func (s *Store) GetPharmacists(ctx context.Context) ([]rota.Pharmacist, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, band, primary_directorate,
		       itu_trained, warfarin_trained, default_dispensary,
		       days_unavailable, locked_slot_ids
		FROM pharmacist
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pharmacists: %w", err)
	}
	defer rows.Close()

	var pharmacists []rota.Pharmacist
	for rows.Next() {
		var (
			p               rota.Pharmacist
			band            int
			directorate     string
			ituTrained      bool
			warfarinTrained bool
			daysUnavailable []string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &band, &directorate,
			&ituTrained, &warfarinTrained, &p.DefaultDispensary,
			&daysUnavailable, &p.LockedSlotIDs); err != nil {
			return nil, fmt.Errorf("failed to scan pharmacist: %w", err)
		}

		p.Band = rota.Band(band)
		ward, err := rota.ParseWard(directorate)
		if err != nil {
			return nil, fmt.Errorf("pharmacist %s: %w", p.ID, err)
		}
		p.PrimaryDirectorate = ward

		if ituTrained {
			p.Qualifications = append(p.Qualifications, rota.ITUTrained)
		}
		if warfarinTrained {
			p.Qualifications = append(p.Qualifications, rota.WarfarinTrained)
		}

		for _, name := range daysUnavailable {
			day, err := rota.ParseDay(name)
			if err != nil {
				return nil, fmt.Errorf("pharmacist %s: %w", p.ID, err)
			}
			p.DaysUnavailable = append(p.DaysUnavailable, day)
		}

		pharmacists = append(pharmacists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pharmacists: %w", err)
	}

	for i := range pharmacists {
		prefs, err := s.getPreferences(ctx, pharmacists[i].ID)
		if err != nil {
			return nil, err
		}
		pharmacists[i].Preferences = prefs
	}

	return pharmacists, nil
}

func (s *Store) getPreferences(ctx context.Context, pharmacistID string) ([]rota.WardPreference, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ward, rank FROM pharmacist_preference
		WHERE pharmacist_id = $1
		ORDER BY rank, ward
	`, pharmacistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences for %s: %w", pharmacistID, err)
	}
	defer rows.Close()

	var prefs []rota.WardPreference
	for rows.Next() {
		var (
			wardName string
			rank     int
		)
		if err := rows.Scan(&wardName, &rank); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		ward, err := rota.ParseWard(wardName)
		if err != nil {
			return nil, fmt.Errorf("preference for %s: %w", pharmacistID, err)
		}
		prefs = append(prefs, rota.WardPreference{Ward: ward, Rank: rank})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preferences: %w", err)
	}

	return prefs, nil
}

// UpsertPharmacist inserts or updates one staff record and replaces their
// ward preferences.
func (s *Store) UpsertPharmacist(ctx context.Context, p rota.Pharmacist) error {
	days := make([]string, len(p.DaysUnavailable))
	for i, d := range p.DaysUnavailable {
		days[i] = d.String()
	}
	locked := p.LockedSlotIDs
	if locked == nil {
		locked = []string{}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO pharmacist (id, name, email, band, primary_directorate,
			itu_trained, warfarin_trained, default_dispensary,
			days_unavailable, locked_slot_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			band = EXCLUDED.band,
			primary_directorate = EXCLUDED.primary_directorate,
			itu_trained = EXCLUDED.itu_trained,
			warfarin_trained = EXCLUDED.warfarin_trained,
			default_dispensary = EXCLUDED.default_dispensary,
			days_unavailable = EXCLUDED.days_unavailable,
			locked_slot_ids = EXCLUDED.locked_slot_ids
	`, p.ID, p.Name, p.Email, int(p.Band), p.PrimaryDirectorate.String(),
		p.HasQualification(rota.ITUTrained), p.HasQualification(rota.WarfarinTrained),
		p.DefaultDispensary, days, locked)
	if err != nil {
		return fmt.Errorf("failed to upsert pharmacist: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM pharmacist_preference WHERE pharmacist_id = $1`, p.ID); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	for _, pref := range p.Preferences {
		_, err := tx.Exec(ctx, `
			INSERT INTO pharmacist_preference (pharmacist_id, ward, rank)
			VALUES ($1, $2, $3)
		`, p.ID, pref.Ward.String(), pref.Rank)
		if err != nil {
			return fmt.Errorf("failed to insert preference: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit pharmacist upsert: %w", err)
	}

	return nil
}
