package places

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marosa/locator-service/internal/hours"
	"github.com/marosa/locator-service/internal/httpclient"
)

// Provider fetches the store directory from the remote place-information
// service. The wire shape follows the places API: a displayName wrapper,
// a location pair, and opening-hours periods as {open:{day,time},
// close:{day,time}} with "HHMM" times.
type Provider struct {
	baseURL string
	client  *httpclient.Client
}

// NewProvider creates a directory provider against the given base URL.
func NewProvider(baseURL string, client *httpclient.Client) *Provider {
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type wireDirectory struct {
	Places []wirePlace `json:"places"`
}

type wirePlace struct {
	ID          string       `json:"id"`
	DisplayName *DisplayName `json:"displayName"`
	Location    struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Rating       *float64   `json:"rating"`
	ImageURL     string     `json:"imageUrl"`
	City         string     `json:"city"`
	OpeningHours *wireHours `json:"openingHours"`
}

type wireHours struct {
	Periods []wirePeriod `json:"periods"`
}

type wirePeriod struct {
	Open  wireDayTime `json:"open"`
	Close wireDayTime `json:"close"`
}

type wireDayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// FetchDirectory retrieves the full store directory.
func (p *Provider) FetchDirectory(ctx context.Context) ([]Place, error) {
	data, err := p.client.GetBytes(ctx, p.baseURL+"/v1/places")
	if err != nil {
		return nil, fmt.Errorf("fetch place directory: %w", err)
	}

	var dir wireDirectory
	if err := json.Unmarshal(data, &dir); err != nil {
		return nil, fmt.Errorf("decode place directory: %w", err)
	}

	out := make([]Place, 0, len(dir.Places))
	for _, wp := range dir.Places {
		out = append(out, wp.toPlace())
	}
	return out, nil
}

func (wp wirePlace) toPlace() Place {
	place := Place{
		PlaceID:     wp.ID,
		DisplayName: wp.DisplayName,
		Position:    LatLng{Lat: wp.Location.Latitude, Lng: wp.Location.Longitude},
		Rating:      wp.Rating,
		ImageURL:    wp.ImageURL,
		City:        wp.City,
	}
	if wp.OpeningHours != nil && len(wp.OpeningHours.Periods) > 0 {
		schedule := &hours.Schedule{
			Periods: make([]hours.Period, 0, len(wp.OpeningHours.Periods)),
		}
		for _, wper := range wp.OpeningHours.Periods {
			schedule.Periods = append(schedule.Periods, hours.Period{
				OpenDay:   wper.Open.Day,
				OpenTime:  wper.Open.Time,
				CloseDay:  wper.Close.Day,
				CloseTime: wper.Close.Time,
			})
		}
		place.OpeningHours = schedule
	}
	return place
}
