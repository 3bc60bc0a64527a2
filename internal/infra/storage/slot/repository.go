package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	"github.com/m04kA/DSP-EnrollmentService/pkg/dbmetrics"
	"github.com/m04kA/DSP-EnrollmentService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"course_id",
	"classification",
	"slot_date",
	"start_time",
	"end_time",
	"total_seats",
	"remaining_seats",
	"total_vehicles",
	"remaining_vehicles",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот. Остатки ёмкости инициализируются полной ёмкостью.
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"course_id",
			"classification",
			"slot_date",
			"start_time",
			"end_time",
			"total_seats",
			"remaining_seats",
			"total_vehicles",
			"remaining_vehicles",
		).
		Values(
			slot.CourseID,
			slot.Classification,
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.TotalSeats,
			slot.TotalSeats,
			slot.TotalVehicles,
			slot.TotalVehicles,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.RemainingSeats = slot.TotalSeats
	slot.RemainingVehicles = slot.TotalVehicles
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByIDs получает слоты по списку ID, упорядоченные по ID (детерминированный
// порядок блокировок). Внутри транзакции строки блокируются FOR UPDATE -
// это коммит-путь, где над слотами будут выполняться условные списания.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// QueryAvailable получает слоты пула по фильтру.
// Прошедшие даты отсекаются условием FromDate (обычно "сегодня");
// при OnlyEligible остаются только слоты с доступной ёмкостью:
// места > 0, а для практических курсов еще и автомобили > 0.
func (r *Repository) QueryAvailable(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"course_id": filter.CourseID})

	if filter.Classification != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"classification": *filter.Classification})
	}

	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *filter.ToDate})
	}

	if filter.OnlyEligible {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"remaining_seats": 0})
		if filter.Classification != nil && *filter.Classification == domain.ClassificationPractical {
			selectBuilder = selectBuilder.Where(squirrel.Gt{"remaining_vehicles": 0})
		}
	}

	query, args, err := selectBuilder.
		OrderBy("slot_date ASC, start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: QueryAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: QueryAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// DecrementCapacity атомарно списывает одно место (и один автомобиль для
// практических курсов). Списание условное: строка обновляется только пока
// остаток больше нуля, поэтому проверка и списание - одна операция и два
// конкурентных коммита не могут оба пройти через последнее место.
// Возвращает ErrSlotExhausted, если ёмкость уже исчерпана.
func (r *Repository) DecrementCapacity(ctx context.Context, slotID int64, withVehicle bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("slots").
		Set("remaining_seats", squirrel.Expr("remaining_seats - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Gt{"remaining_seats": 0})

	if withVehicle {
		updateBuilder = updateBuilder.
			Set("remaining_vehicles", squirrel.Expr("remaining_vehicles - 1")).
			Where(squirrel.Gt{"remaining_vehicles": 0})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DecrementCapacity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DecrementCapacity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementCapacity - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotExhausted
	}

	return nil
}

// RestoreCapacity возвращает одно место (и один автомобиль для практических
// курсов) слоту. Симметрично DecrementCapacity: обновление условное, остаток
// не может превысить исходную ёмкость.
func (r *Repository) RestoreCapacity(ctx context.Context, slotID int64, withVehicle bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("slots").
		Set("remaining_seats", squirrel.Expr("remaining_seats + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Expr("remaining_seats < total_seats"))

	if withVehicle {
		updateBuilder = updateBuilder.
			Set("remaining_vehicles", squirrel.Expr("remaining_vehicles + 1")).
			Where(squirrel.Expr("remaining_vehicles < total_vehicles"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: RestoreCapacity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RestoreCapacity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RestoreCapacity - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCapacityOverflow
	}

	return nil
}

// scanSlot сканирует одну строку в модель слота
func (r *Repository) scanSlot(row *sql.Row) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.CourseID,
		&slot.Classification,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.TotalSeats,
		&slot.RemainingSeats,
		&slot.TotalVehicles,
		&slot.RemainingVehicles,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var slot domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.CourseID,
			&slot.Classification,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.TotalSeats,
			&slot.RemainingSeats,
			&slot.TotalVehicles,
			&slot.RemainingVehicles,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
