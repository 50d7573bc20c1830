package tracking

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-tracker-api/internal/domain"
	"github.com/vfg2006/lead-tracker-api/pkg/utils"
)

// profileFromMetadata extrai os dados de contato do metadata livre do evento de criação
func profileFromMetadata(metadata map[string]any, phoneRegion string) domain.ContactProfile {
	var profile domain.ContactProfile
	if len(metadata) == 0 {
		return profile
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &profile,
	})
	if err != nil {
		logrus.WithError(err).Warn("Erro ao criar decoder de metadata")
		return profile
	}

	if err := decoder.Decode(metadata); err != nil {
		logrus.WithError(err).Warn("Metadata do contato parcialmente inválido")
	}

	if profile.Name == "" {
		profile.Name = joinName(metadata)
	}

	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = utils.NormalizeEmail(profile.Email)
	profile.Phone = utils.NormalizePhone(profile.Phone, phoneRegion)

	return profile
}

func joinName(metadata map[string]any) string {
	parts := make([]string, 0, 2)
	for _, key := range []string{"first_name", "last_name"} {
		if value, ok := metadata[key].(string); ok && strings.TrimSpace(value) != "" {
			parts = append(parts, strings.TrimSpace(value))
		}
	}
	return strings.Join(parts, " ")
}
