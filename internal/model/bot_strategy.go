package model

// Bot strategy constants
const (
	BotStrategyRandom  = "random"
	BotStrategyFirst   = "first"
	BotStrategyNetwork = "network"
)

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategyRandom:
		return "Random"
	case BotStrategyFirst:
		return "First Card, Top Left"
	case BotStrategyNetwork:
		return "Network Builder"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategyRandom, BotStrategyFirst, BotStrategyNetwork}
}
