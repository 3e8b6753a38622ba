package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type equipmentRepository struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db}
}

const equipmentColumns = `id, name, category, daily_rate, status, description, weight, fuel_type, power, reach, image_url, features, specifications, created_on`

// encodeFeatures serializes the feature list to JSON text. Nil encodes as an
// empty array so stored values always decode.
func encodeFeatures(features []string) string {
	if features == nil {
		features = []string{}
	}
	data, err := json.Marshal(features)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func encodeSpecifications(specs map[string]string) string {
	if specs == nil {
		specs = map[string]string{}
	}
	data, err := json.Marshal(specs)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// decodeFeatures is defensive: malformed stored text yields an empty list,
// never a read failure.
func decodeFeatures(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var features []string
	if err := json.Unmarshal([]byte(raw), &features); err != nil || features == nil {
		return []string{}
	}
	return features
}

func decodeSpecifications(raw string) map[string]string {
	if raw == "" {
		return map[string]string{}
	}
	var specs map[string]string
	if err := json.Unmarshal([]byte(raw), &specs); err != nil || specs == nil {
		return map[string]string{}
	}
	return specs
}

func scanEquipment(row interface{ Scan(...any) error }) (*domain.Equipment, error) {
	eq := &domain.Equipment{}
	var features, specs string
	err := row.Scan(&eq.ID, &eq.Name, &eq.Category, &eq.DailyRate, &eq.Status,
		&eq.Description, &eq.Weight, &eq.FuelType, &eq.Power, &eq.Reach,
		&eq.ImageURL, &features, &specs, &eq.CreatedOn)
	if err != nil {
		return nil, err
	}
	eq.Features = decodeFeatures(features)
	eq.Specifications = decodeSpecifications(specs)
	eq.Available = eq.IsAvailable()
	return eq, nil
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	if eq.Status == "" {
		eq.Status = domain.EquipmentStatusAvailable
	}
	query := `INSERT INTO equipment (name, category, daily_rate, status, description, weight, fuel_type, power, reach, image_url, features, specifications, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		eq.Name, eq.Category, eq.DailyRate, eq.Status, eq.Description,
		eq.Weight, eq.FuelType, eq.Power, eq.Reach, eq.ImageURL,
		encodeFeatures(eq.Features), encodeSpecifications(eq.Specifications),
		time.Now()).Scan(&eq.ID, &eq.CreatedOn)
	if err != nil {
		return err
	}
	eq.Available = eq.IsAvailable()
	return nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	eq, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("equipment %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

// GetByIDTx locks the equipment row for the rest of the transaction. Used by
// the booking path so the availability check and the status write form one
// critical section per equipment.
func (r *equipmentRepository) GetByIDTx(ctx context.Context, tx *sql.Tx, id int32) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1 FOR UPDATE`
	eq, err := scanEquipment(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("equipment %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *equipmentRepository) List(ctx context.Context, filter repository.EquipmentFilter) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.AvailableOnly {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, domain.EquipmentStatusAvailable)
		argIdx++
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *eq)
	}
	return list, rows.Err()
}

// Update applies only the fields present in upd and returns the fresh record.
func (r *equipmentRepository) Update(ctx context.Context, id int32, upd *domain.EquipmentUpdate) (*domain.Equipment, error) {
	set := ""
	args := []interface{}{}
	argIdx := 1
	add := func(column string, value interface{}) {
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", column, argIdx)
		args = append(args, value)
		argIdx++
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.DailyRate != nil {
		add("daily_rate", *upd.DailyRate)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Weight != nil {
		add("weight", *upd.Weight)
	}
	if upd.FuelType != nil {
		add("fuel_type", *upd.FuelType)
	}
	if upd.Power != nil {
		add("power", *upd.Power)
	}
	if upd.Reach != nil {
		add("reach", *upd.Reach)
	}
	if upd.ImageURL != nil {
		add("image_url", *upd.ImageURL)
	}
	if upd.Features != nil {
		add("features", encodeFeatures(*upd.Features))
	}
	if upd.Specifications != nil {
		add("specifications", encodeSpecifications(*upd.Specifications))
	}

	if set == "" {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf("UPDATE equipment SET %s WHERE id = $%d", set, argIdx)
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, domain.NotFoundf("equipment %d not found", id)
	}
	return r.GetByID(ctx, id)
}

func (r *equipmentRepository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id int32, status domain.EquipmentStatus) error {
	res, err := tx.ExecContext(ctx, `UPDATE equipment SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundf("equipment %d not found", id)
	}
	return nil
}

func (r *equipmentRepository) ExistsAny(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM equipment)`).Scan(&exists)
	return exists, err
}

func (r *equipmentRepository) CountByStatus(ctx context.Context) (map[domain.EquipmentStatus]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM equipment GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.EquipmentStatus]int32)
	for rows.Next() {
		var status domain.EquipmentStatus
		var count int32
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
