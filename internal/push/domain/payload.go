package domain

// PayloadData rides along with the notification so the service worker can
// route a click and so duplicate displays can be collapsed by event id.
type PayloadData struct {
	EventID string `json:"eventId"`
	URL     string `json:"url"`
}

// MatchPushPayload is the JSON body encrypted into each web push message.
type MatchPushPayload struct {
	Type  string      `json:"type"`
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Data  PayloadData `json:"data"`
}
