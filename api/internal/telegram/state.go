package telegram

import "sync"

var (
	inFlight sync.Map // chatID -> struct{}
	regions  sync.Map // chatID -> string, last region derived from a location
)

// startIdentify reserves the chat for one identification at a time.
func startIdentify(chatID int64) bool {
	_, busy := inFlight.LoadOrStore(chatID, struct{}{})
	return !busy
}

func finishIdentify(chatID int64) { inFlight.Delete(chatID) }

func setLastRegion(chatID int64, region string) { regions.Store(chatID, region) }

func lastRegion(chatID int64) string {
	if v, ok := regions.Load(chatID); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ""
}
