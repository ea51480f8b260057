package services

import (
	"bytes"
	"fmt"

	"maintenance-system/internal/entities"
	"maintenance-system/pkg/constants"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []interface{}{
	"Área",
	"Tipo de Equipo",
	"Nombre PC",
	"Marca",
	"Modelo",
	"Serie",
	"Fecha Mantenimiento",
	"Tipo Mantenimiento",
	"Estado Equipo",
	"Técnico Responsable",
	"Observaciones",
}

// EncodeEquipmentXLSX строит книгу с одним листом: заголовок и по строке на запись в порядке входа.
func EncodeEquipmentXLSX(records []entities.Equipment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := constants.ExportSheetName
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("не удалось переименовать лист: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать стиль заголовка: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("не удалось записать заголовок: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("не удалось применить стиль заголовка: %w", err)
	}

	for i, e := range records {
		row := []interface{}{
			e.Area,
			string(e.EquipmentType),
			e.DeviceName,
			e.Brand,
			e.Model,
			e.SerialNumber,
			e.MaintenanceDate.UTC().Format(constants.ExportDateLayout),
			string(e.MaintenanceType),
			string(e.EquipmentStatus),
			e.ResponsibleTechnician,
			e.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("не удалось записать строку %d: %w", i+2, err)
		}
	}

	for col := 1; col <= len(exportHeaders); col++ {
		name, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(sheetName, name, name, 20); err != nil {
			return nil, fmt.Errorf("не удалось задать ширину столбца: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("не удалось сериализовать книгу: %w", err)
	}
	return buf.Bytes(), nil
}
