package copilot

import (
	"fmt"
	"strings"

	"github.com/piresc/vigilante/internal/pkg/models"
	"github.com/piresc/vigilante/internal/utils"
)

// maxDigestHazards bounds how many nearby hazards reach the prompt
const maxDigestHazards = 3

// HazardDigest summarizes the nearest hazards as short text, e.g.
// "radar 80 km/h at 350 m; accident at 1.2 km"
func HazardDigest(events []models.ProximityEvent) string {
	if len(events) == 0 {
		return "none"
	}

	parts := make([]string, 0, maxDigestHazards)
	for i, ev := range events {
		if i == maxDigestHazards {
			break
		}
		distance := utils.FormatDistance(ev.DistanceMeters)
		if ev.Hazard.IsRadar() {
			parts = append(parts, fmt.Sprintf("radar %d km/h at %s", ev.Hazard.SpeedLimit, distance))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s at %s", ev.Hazard.Category, distance))
	}
	return strings.Join(parts, "; ")
}

func weatherDigest(w models.WeatherSnapshot) string {
	if !w.Known {
		return "unknown"
	}
	digest := fmt.Sprintf("%s, %.0f°C", w.Condition, w.Temperature)
	if w.IsRaining {
		digest += ", raining"
	}
	return digest
}

func positionDigest(pos *models.Position) string {
	if pos == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.4f,%.4f", pos.Latitude, pos.Longitude)
}

func copilotInstruction(lang string) string {
	return fmt.Sprintf("You are Vigilante, an in-car driving copilot. Reply in %s. "+
		"Be extremely brief: at most 15 words. If there is danger ahead, warn immediately. "+
		"If there are no radars nearby, confirm it.", phrasesFor(lang).languageName)
}

// BuildPrompt assembles the bounded context sent for one copilot turn
func BuildPrompt(command string, req models.TriggerRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Driver command: %q\n", command)
	fmt.Fprintf(&b, "Position: %s\n", positionDigest(req.Position))
	fmt.Fprintf(&b, "Weather: %s\n", weatherDigest(req.Weather))
	fmt.Fprintf(&b, "Nearby hazards: %s", HazardDigest(req.Nearby))
	return b.String()
}

func adviceInstruction(lang string) string {
	return fmt.Sprintf("You are Vigilante Legal, a road-traffic legal assistant specialised in the "+
		"highway codes of Portugal, Spain and the United Kingdom. Reply in %s. "+
		"Be technical but accessible and cite articles where possible. "+
		"The user may be contesting a fine or asking about driving rules.", phrasesFor(lang).languageName)
}
