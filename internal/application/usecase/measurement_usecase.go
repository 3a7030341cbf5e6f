package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-engine/internal/application/dto"
	"github.com/jhoicas/inventario-engine/internal/domain"
	"github.com/jhoicas/inventario-engine/internal/domain/measurement"
)

// MeasurementUseCase conversión de unidades expuesta a la UI.
type MeasurementUseCase struct{}

// NewMeasurementUseCase construye el caso de uso.
func NewMeasurementUseCase() *MeasurementUseCase {
	return &MeasurementUseCase{}
}

// Convert expresa la medida en target_unit y en la unidad base de su dimensión.
// Una unidad de otra dimensión falla con domain.ErrIncompatibleDimension.
func (uc *MeasurementUseCase) Convert(in dto.ConvertMeasurementRequest) (*dto.ConvertMeasurementResponse, error) {
	m, err := fromMeasurementDTO(in.Measurement)
	if err != nil {
		return nil, err
	}
	target := measurement.Unit(strings.TrimSpace(in.TargetUnit))
	if target == "" {
		return nil, fmt.Errorf("%w: target_unit es obligatorio", domain.ErrValidation)
	}
	result, err := measurement.Convert(m, target)
	if err != nil {
		return nil, err
	}
	base, err := measurement.Convert(m, measurement.BaseUnit(m.Dimension()))
	if err != nil {
		return nil, err
	}
	return &dto.ConvertMeasurementResponse{
		Result: toMeasurementDTO(result),
		Base:   toMeasurementDTO(base),
	}, nil
}

// Units unidades válidas por dimensión, para los selectores de la UI.
func (uc *MeasurementUseCase) Units() map[string][]string {
	out := make(map[string][]string, len(measurement.Dimensions))
	for _, dim := range measurement.Dimensions {
		units := measurement.UnitsOf(dim)
		names := make([]string, 0, len(units))
		for _, u := range units {
			names = append(names, string(u))
		}
		out[string(dim)] = names
	}
	return out
}
