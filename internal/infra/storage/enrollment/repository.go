package enrollment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DSP-EnrollmentService/internal/domain"
	"github.com/m04kA/DSP-EnrollmentService/pkg/dbmetrics"
	"github.com/m04kA/DSP-EnrollmentService/pkg/psqlbuilder"
)

var enrollmentColumns = []string{
	"id",
	"student_id",
	"course_id",
	"status",
	"discount_category",
	"base_price",
	"discount_amount",
	"net_price",
	"amount_due_now",
	"amount_due_later",
	"payment_reference",
	"discount_proof_ref",
	"payment_proof_ref",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с зачислениями и назначениями слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория зачислений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает зачисление вместе с назначениями слотов.
// Вызывается только внутри транзакции фиксации брони: зачисление и его
// назначения либо записываются целиком, либо не записываются вовсе.
func (r *Repository) Create(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("enrollments").
		Columns(
			"student_id",
			"course_id",
			"status",
			"discount_category",
			"base_price",
			"discount_amount",
			"net_price",
			"amount_due_now",
			"amount_due_later",
			"payment_reference",
			"discount_proof_ref",
			"payment_proof_ref",
		).
		Values(
			enrollment.StudentID,
			enrollment.CourseID,
			enrollment.Status,
			enrollment.DiscountCategory,
			enrollment.BasePrice,
			enrollment.DiscountAmount,
			enrollment.NetPrice,
			enrollment.AmountDueNow,
			enrollment.AmountDueLater,
			enrollment.PaymentReference,
			enrollment.DiscountProofRef,
			enrollment.PaymentProofRef,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&enrollment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	enrollment.CreatedAt = createdAt.Time
	enrollment.UpdatedAt = updatedAt.Time

	if len(enrollment.Assignments) > 0 {
		insertBuilder := psqlbuilder.Insert("enrollment_slots").
			Columns("enrollment_id", "day_index", "slot_id", "outcome")

		for i := range enrollment.Assignments {
			enrollment.Assignments[i].EnrollmentID = enrollment.ID
			if enrollment.Assignments[i].Outcome == "" {
				enrollment.Assignments[i].Outcome = domain.OutcomePending
			}
			insertBuilder = insertBuilder.Values(
				enrollment.ID,
				enrollment.Assignments[i].DayIndex,
				enrollment.Assignments[i].SlotID,
				enrollment.Assignments[i].Outcome,
			)
		}

		query, args, err := insertBuilder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build assignments insert: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: Create - insert assignments: %v", ErrExecQuery, err)
		}
	}

	return enrollment, nil
}

// GetByID получает зачисление по ID вместе с назначениями слотов
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(enrollmentColumns...).
		From("enrollments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	enrollment, err := scanEnrollmentRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan enrollment: %v", ErrScanRow, err)
	}

	if err := r.loadAssignments(ctx, []*domain.Enrollment{enrollment}); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// GetByStudentID получает зачисления студента, новые первыми.
// Опционально фильтрует по статусу.
func (r *Repository) GetByStudentID(ctx context.Context, studentID int64, status *domain.EnrollmentStatus) ([]*domain.Enrollment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(enrollmentColumns...).
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC, id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudentID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudentID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	enrollments, err := scanEnrollments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAssignments(ctx, enrollments); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// HasActive проверяет, есть ли у студента зачисление в неконечном статусе.
// Авторитетная проверка выполняется внутри сериализуемой транзакции фиксации
// брони: два конкурентных коммита одного студента не могут оба пройти guard -
// один из них упадет с serialization failure и после повтора увидит
// активное зачисление.
func (r *Repository) HasActive(ctx context.Context, studentID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	terminal := make([]string, len(domain.TerminalStatuses))
	for i, s := range domain.TerminalStatuses {
		terminal[i] = string(s)
	}

	query, args, err := psqlbuilder.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID}).
		Where(squirrel.NotEq{"status": terminal}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActive - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActive - scan result: %v", ErrScanRow, err)
	}

	return true, nil
}

// UpdateStatus обновляет статус зачисления.
// Допустимость перехода проверяется на уровне сервиса (domain.CanTransition).
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("enrollments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEnrollmentNotFound
	}

	return nil
}

// Cancel переводит зачисление в статус cancelled с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("enrollments").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEnrollmentNotFound
	}

	return nil
}

// UpdateDayOutcome записывает результат учебного дня в назначение слота
func (r *Repository) UpdateDayOutcome(ctx context.Context, enrollmentID int64, dayIndex int, outcome domain.DayOutcome) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("enrollment_slots").
		Set("outcome", outcome).
		Where(squirrel.Eq{"enrollment_id": enrollmentID}).
		Where(squirrel.Eq{"day_index": dayIndex}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDayOutcome - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDayOutcome - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDayOutcome - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// loadAssignments загружает назначения слотов для набора зачислений
func (r *Repository) loadAssignments(ctx context.Context, enrollments []*domain.Enrollment) error {
	if len(enrollments) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, len(enrollments))
	byID := make(map[int64]*domain.Enrollment, len(enrollments))
	for i, e := range enrollments {
		ids[i] = e.ID
		byID[e.ID] = e
		e.Assignments = make([]domain.SlotAssignment, 0)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"enrollment_id",
		"day_index",
		"slot_id",
		"outcome",
		"created_at",
	).
		From("enrollment_slots").
		Where(squirrel.Eq{"enrollment_id": ids}).
		OrderBy("enrollment_id ASC, day_index ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadAssignments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadAssignments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var assignment domain.SlotAssignment
		var createdAt sql.NullTime

		err := rows.Scan(
			&assignment.ID,
			&assignment.EnrollmentID,
			&assignment.DayIndex,
			&assignment.SlotID,
			&assignment.Outcome,
			&createdAt,
		)
		if err != nil {
			return fmt.Errorf("%w: loadAssignments - scan row: %v", ErrScanRow, err)
		}

		assignment.CreatedAt = createdAt.Time

		if e, ok := byID[assignment.EnrollmentID]; ok {
			e.Assignments = append(e.Assignments, assignment)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadAssignments - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// scanEnrollmentRow сканирует одну строку в модель зачисления
func scanEnrollmentRow(row *sql.Row) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.Status,
		&enrollment.DiscountCategory,
		&enrollment.BasePrice,
		&enrollment.DiscountAmount,
		&enrollment.NetPrice,
		&enrollment.AmountDueNow,
		&enrollment.AmountDueLater,
		&enrollment.PaymentReference,
		&enrollment.DiscountProofRef,
		&enrollment.PaymentProofRef,
		&enrollment.CancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		enrollment.CancelledAt = &cancelledAt.Time
	}
	enrollment.CreatedAt = createdAt.Time
	enrollment.UpdatedAt = updatedAt.Time

	return &enrollment, nil
}

// scanEnrollments сканирует результаты запроса в слайс зачислений
func scanEnrollments(rows *sql.Rows) ([]*domain.Enrollment, error) {
	enrollments := make([]*domain.Enrollment, 0)

	for rows.Next() {
		var enrollment domain.Enrollment
		var cancelledAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.Status,
			&enrollment.DiscountCategory,
			&enrollment.BasePrice,
			&enrollment.DiscountAmount,
			&enrollment.NetPrice,
			&enrollment.AmountDueNow,
			&enrollment.AmountDueLater,
			&enrollment.PaymentReference,
			&enrollment.DiscountProofRef,
			&enrollment.PaymentProofRef,
			&enrollment.CancellationReason,
			&cancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanEnrollments - scan row: %v", ErrScanRow, err)
		}

		if cancelledAt.Valid {
			enrollment.CancelledAt = &cancelledAt.Time
		}
		enrollment.CreatedAt = createdAt.Time
		enrollment.UpdatedAt = updatedAt.Time

		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEnrollments - rows error: %v", ErrScanRow, err)
	}

	return enrollments, nil
}
