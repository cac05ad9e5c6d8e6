package zones

// ModelSelector выбирает рекомендуемую модель из списка сгенерированных.
// Интерфейс выделен, чтобы политику выбора можно было заменить, не трогая
// вызывающий код.
type ModelSelector interface {
	Select(models []ZoneModel) *ZoneModel
}

// FiveZonePreferredSelector — текущая фиксированная политика: всегда
// предпочитать 5-зонную модель, иначе первую в списке.
type FiveZonePreferredSelector struct{}

func (FiveZonePreferredSelector) Select(models []ZoneModel) *ZoneModel {
	if len(models) == 0 {
		return nil
	}

	for i := range models {
		if models[i].Name == FiveZoneModelName {
			return &models[i]
		}
	}

	return &models[0]
}
