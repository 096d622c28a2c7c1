package controllers

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"echo_campus/internal/assistant"
	"echo_campus/internal/config"
	"echo_campus/internal/geocode"
	"echo_campus/internal/mapview"
	"echo_campus/internal/models"
	"echo_campus/internal/predictor"
	"echo_campus/internal/sos"
)

// Shared service singletons, wired once at startup by InitServices.
var (
	geocoder *geocode.Client
	crimeAI  *predictor.Predictor
	voiceBot *assistant.Assistant
	sosFlow  *sos.Flow
)

// InitServices builds the service layer from the environment. Call after
// config.InitDB.
func InitServices() {
	geocoder = geocode.NewClient(
		config.GetEnv("MAPBOX_TOKEN", ""),
		mapview.CampusLat, mapview.CampusLng,
	)

	news := predictor.NewNewsClient(config.GetEnv("NEWS_API_KEY", ""))
	var llm *predictor.OpenAILLM
	if key := config.GetEnv("OPENAI_API_KEY", ""); key != "" {
		llm = predictor.NewOpenAILLM(key, config.GetEnv("OPENAI_MODEL", ""))
	}

	if llm != nil {
		crimeAI = predictor.New(news, llm)
		voiceBot = assistant.New(llm)
	} else {
		logrus.Warn("OPENAI_API_KEY not set, AI features run on fallbacks")
		crimeAI = predictor.New(news, nil)
		voiceBot = assistant.New(nil)
	}

	stagger := sos.DefaultStagger
	if raw := config.GetEnv("SOS_STAGGER_MS", ""); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			stagger = time.Duration(ms) * time.Millisecond
		}
	}
	sosFlow = sos.NewFlow(dbAlertStore{}, dbContactSource{}, sos.NewDispatcher(linkOpener{}, stagger))
}

type dbAlertStore struct{}

func (dbAlertStore) SaveAlert(ctx context.Context, alert *models.SOSAlert) error {
	return config.DB.WithContext(ctx).Create(alert).Error
}

type dbContactSource struct{}

func (dbContactSource) TrustedContacts(ctx context.Context, userID uint) ([]models.TrustedContact, error) {
	var contacts []models.TrustedContact
	err := config.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position").
		Find(&contacts).Error
	return contacts, err
}

// linkOpener "opens" a messaging link server-side by pushing it onto the
// alert stream and logging it. The client receives the link set in the SOS
// response and performs the actual window opens.
type linkOpener struct{}

func (linkOpener) Open(url string) error {
	logrus.WithField("url", url).Info("sos: messaging link ready")
	alertHub.Publish(AlertEvent{Kind: "sos_link", Payload: map[string]string{"url": url}})
	return nil
}
