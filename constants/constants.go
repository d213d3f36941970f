package constants

import "os"

// Symbolic units spanned by one page at the default block count.
const VerticalSize = 384

// Units per beat. A page is 8 blocks of this size.
const QuarterInterval = VerticalSize / 8

const DefaultBlockNum = VerticalSize / QuarterInterval

const FPS = 60

// Two beats of count-in precede the first page.
const LeadIn = 2 * QuarterInterval

const DefaultBlankFrame = 200
const DefaultScoreNumber = 1
const DefaultBPM = 140.0

// Upper bound on page indexes accepted from chart text.
const MaxPages = 9999

func getEnv(name string, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// GetKeyConfigPath returns "" when the built-in key layouts should be used.
func GetKeyConfigPath() string {
	return os.Getenv("KEY_CONFIG_PATH")
}

func GetDynamoEndpoint() string {
	return getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getEnv("DYNAMODB_REGION", "localhost")
}

func GetChartTable() string {
	return getEnv("CHART_TABLE", "dosrevive-charts")
}

func GetPort() string {
	return getEnv("PORT", "8080")
}
