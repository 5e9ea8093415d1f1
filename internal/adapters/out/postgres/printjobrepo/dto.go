// Package printjobrepo provides data transfer objects and mapping functions
// for print job persistence. The frozen ticket snapshot is flattened into the
// job row so a job never depends on the live item or order rows.
package printjobrepo

import (
	"time"

	"expeditor/internal/core/domain/model/kernel"
	"expeditor/internal/core/domain/model/printjob"

	"github.com/google/uuid"
)

// PrintJobDTO represents the database structure for persisting print jobs.
type PrintJobDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderItemID  uuid.UUID `gorm:"type:uuid;index"`
	ProductName  string
	Quantity     int
	Notes        string
	Complements  string
	EdgeType     string
	Flavors      string
	CustomerName string
	Address      string
	Neighborhood string
	Status       string `gorm:"index"`
	PrinterName  string
	ErrorMessage string
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	PrintedAt    *time.Time
}

// TableName specifies the database table name for print job entities.
func (PrintJobDTO) TableName() string {
	return "print_jobs"
}

// fromDomain converts a print job domain aggregate to its database representation.
func fromDomain(j *printjob.PrintJob) PrintJobDTO {
	snapshot := j.Snapshot()

	return PrintJobDTO{
		ID:           j.ID().Bytes(),
		OrderItemID:  j.OrderItemID().Bytes(),
		ProductName:  snapshot.ProductName,
		Quantity:     snapshot.Quantity,
		Notes:        snapshot.Notes,
		Complements:  snapshot.Complements,
		EdgeType:     snapshot.EdgeType,
		Flavors:      snapshot.Flavors,
		CustomerName: snapshot.CustomerName,
		Address:      snapshot.Address,
		Neighborhood: snapshot.Neighborhood,
		Status:       j.Status().String(),
		PrinterName:  j.PrinterName(),
		ErrorMessage: j.ErrorMessage(),
		CreatedAt:    j.CreatedAt(),
		PrintedAt:    j.PrintedAt(),
	}
}

// toDomain converts a database DTO to a print job aggregate using RestorePrintJob.
func toDomain(dto PrintJobDTO) (*printjob.PrintJob, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}

	status, err := printjob.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	snapshot := printjob.TicketSnapshot{
		ProductName:  dto.ProductName,
		Quantity:     dto.Quantity,
		Notes:        dto.Notes,
		Complements:  dto.Complements,
		EdgeType:     dto.EdgeType,
		Flavors:      dto.Flavors,
		CustomerName: dto.CustomerName,
		Address:      dto.Address,
		Neighborhood: dto.Neighborhood,
	}

	return printjob.RestorePrintJob(
		id, orderItemID, snapshot, status,
		dto.PrinterName, dto.ErrorMessage, dto.CreatedAt, dto.PrintedAt,
	)
}
