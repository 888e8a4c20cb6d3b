package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/theopenshift/openshift-web/internal/constants"
	"github.com/theopenshift/openshift-web/internal/utils"
)

// PublicConfig is handed to the browser untouched.
type PublicConfig struct {
	GoogleMapsKey string `json:"googleMapsKey,omitempty"`
	ABNGUID       string `json:"abnGuid,omitempty"`
}

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Marketplace API
	APIBaseURL string
	APITimeout time.Duration

	// Identity provider
	IDPPublicKey *rsa.PublicKey
	IDPIssuer    string

	DisplayLocation *time.Location
	Public          PublicConfig

	// LaunchDarkly flags
	LDFlag_OptimisticActivityTimer bool
	LDFlag_CORSHighSecurity        bool
}

// build-time overrides
var (
	AppName             = "openshift-web"
	LDServerContextKey  = "openshift-web"
	LDServerContextKind = "service"
)

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debugf("No .env file loaded: %v", err)
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	appUrl := os.Getenv("APP_URL_FROM_ANYWHERE")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	apiBaseURL := os.Getenv("API_BASE_URL")
	if apiBaseURL == "" {
		utils.Logger.Fatal("API_BASE_URL env var is missing")
	}

	apiTimeout := constants.DefaultAPITimeout
	if v := os.Getenv("API_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			utils.Logger.Fatalf("API_TIMEOUT_SECONDS invalid: %q", v)
		}
		apiTimeout = time.Duration(secs) * time.Second
	}

	var pubKey *rsa.PublicKey
	if pubB64 := os.Getenv("IDP_PUBLIC_KEY_BASE64"); pubB64 != "" {
		pubPEM, _ := base64.StdEncoding.DecodeString(pubB64)
		if block, _ := pem.Decode(pubPEM); block == nil {
			utils.Logger.Fatal("Failed to decode PEM block for identity provider public key")
		}
		k, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to parse identity provider public key")
		}
		pubKey = k
	} else {
		utils.Logger.Warn("IDP_PUBLIC_KEY_BASE64 not set; token signatures will NOT be verified")
	}

	tzName := os.Getenv("DISPLAY_TIMEZONE")
	if tzName == "" {
		tzName = constants.DefaultDisplayTZName
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Unknown DISPLAY_TIMEZONE %q, using UTC", tzName)
		loc = time.UTC
	}

	flags := loadFlags(os.Getenv("LD_SDK_KEY"))

	return &Config{
		AppName:         AppName,
		AppPort:         appPort,
		AppUrl:          appUrl,
		APIBaseURL:      apiBaseURL,
		APITimeout:      apiTimeout,
		IDPPublicKey:    pubKey,
		IDPIssuer:       os.Getenv("IDP_ISSUER"),
		DisplayLocation: loc,
		Public: PublicConfig{
			GoogleMapsKey: os.Getenv("NEXT_PUBLIC_GOOGLE_MAPS_KEY"),
			ABNGUID:       os.Getenv("NEXT_PUBLIC_ABN_GUID"),
		},
		LDFlag_OptimisticActivityTimer: flags.optimisticTimer,
		LDFlag_CORSHighSecurity:        flags.corsHighSecurity,
	}
}

type flagSnapshot struct {
	optimisticTimer  bool
	corsHighSecurity bool
}

// loadFlags snapshots the feature flags once at startup. With no SDK key the
// client runs offline and every flag takes its default.
func loadFlags(sdkKey string) flagSnapshot {
	var (
		ldClient *ld.LDClient
		err      error
	)
	if sdkKey == "" {
		utils.Logger.Info("LD_SDK_KEY not set; feature flags use offline defaults")
		ldClient, err = ld.MakeCustomClient("", ld.Config{Offline: true}, 0)
	} else {
		ldClient, err = ld.MakeClient(sdkKey, constants.LDConnectionTimeout)
	}
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to create LaunchDarkly client")
	}
	defer ldClient.Close()
	if sdkKey != "" && !ldClient.Initialized() {
		utils.Logger.Fatal("LaunchDarkly client failed to initialize")
	}

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), LDServerContextKey)

	optimisticTimer, err := ldClient.BoolVariation("optimistic_activity_timer", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Warn("Error retrieving optimistic_activity_timer flag")
	}
	utils.Logger.Debugf("optimistic_activity_timer flag: %t", optimisticTimer)

	corsHighSecurity, err := ldClient.BoolVariation("cors_high_security", ctx, false)
	if err != nil {
		utils.Logger.WithError(err).Warn("Error retrieving cors_high_security flag")
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsHighSecurity)

	return flagSnapshot{
		optimisticTimer:  optimisticTimer,
		corsHighSecurity: corsHighSecurity,
	}
}

func (c *Config) Close() {}
