// Package places is the HTTP client for the maps gateway. It turns an
// incident postcode into the kinds of places found in its immediate
// surroundings (schools, parks, waterways) so the narrative can name what the
// dumped waste actually threatens.
package places

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// searchRadiusMeters bounds the nearby search to the block around the
// incident; anything farther is not meaningfully "nearby" for a narrative.
const searchRadiusMeters = 150

// placeTypeToFeature maps the gateway's raw place types onto the feature
// labels the narrative prompt understands. Types absent from the map are
// ignored.
var placeTypeToFeature = map[string]string{
	"apartment_building":  "residentialAreas",
	"apartment_complex":   "residentialAreas",
	"condominium_complex": "residentialAreas",
	"housing_complex":     "residentialAreas",
	"neighborhood":        "residentialAreas",
	"place_of_worship":    "placeOfWorship",
	"church":              "placeOfWorship",
	"hindu_temple":        "placeOfWorship",
	"mosque":              "placeOfWorship",
	"synagogue":           "placeOfWorship",
	"preschool":           "schoolsAndEducationalFacilities",
	"primary_school":      "schoolsAndEducationalFacilities",
	"school":              "schoolsAndEducationalFacilities",
	"secondary_school":    "schoolsAndEducationalFacilities",
	"hospital":            "healthcareFacilities",
	"doctor":              "healthcareFacilities",
	"dentist":             "healthcareFacilities",
	"dental_clinic":       "healthcareFacilities",
	"pharmacy":            "healthcareFacilities",
	"medical_lab":         "healthcareFacilities",
	"physiotherapist":     "healthcareFacilities",
	"chiropractor":        "healthcareFacilities",
	"park":                "parksAndRecreationAreas",
	"national_park":       "parksAndRecreationAreas",
	"state_park":          "parksAndRecreationAreas",
	"garden":              "parksAndRecreationAreas",
	"botanical_garden":    "parksAndRecreationAreas",
	"picnic_ground":       "parksAndRecreationAreas",
	"beach":               "waterwaysAndWetlands",
	"farm":                "agriculturalLand",
	"ranch":               "agriculturalLand",
	"wildlife_refuge":     "natureReservesAndProtectedHabitats",
	"wildlife_park":       "natureReservesAndProtectedHabitats",
	"corporate_office":    "corporateOffice",
	"playground":          "playgroundsAndRecreationalFacilitiesForChildren",
	"childrens_camp":      "playgroundsAndRecreationalFacilitiesForChildren",
	"dog_park":            "playgroundsAndRecreationalFacilitiesForChildren",
}

type Client struct {
	client *resty.Client
	apiKey string
}

// NewClient builds a maps gateway client for the given base URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		client: resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}
}

type geocodeReply struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type nearbyReply struct {
	Status  string `json:"status"`
	Results []struct {
		Types []string `json:"types"`
	} `json:"results"`
}

// NearbyFeatures geocodes the postcode and returns the sorted, de-duplicated
// feature labels of the places around it.
func (c *Client) NearbyFeatures(ctx context.Context, postcode string) ([]string, error) {
	lat, lng, err := c.geocode(ctx, postcode)
	if err != nil {
		return nil, err
	}
	return c.nearbyTypes(ctx, lat, lng)
}

func (c *Client) geocode(ctx context.Context, postcode string) (float64, float64, error) {
	var reply geocodeReply
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address": postcode,
			"key":     c.apiKey,
		}).
		SetResult(&reply).
		Get("/maps/api/geocode/json")
	if err != nil {
		return 0, 0, errors.Wrap(err, "calling maps gateway")
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, 0, errors.Errorf("maps gateway returned %s", resp.Status())
	}
	if len(reply.Results) == 0 {
		return 0, 0, errors.Errorf("no coordinates found for postcode %s", postcode)
	}

	location := reply.Results[0].Geometry.Location
	return location.Lat, location.Lng, nil
}

func (c *Client) nearbyTypes(ctx context.Context, lat, lng float64) ([]string, error) {
	var reply nearbyReply
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"location": fmt.Sprintf("%f,%f", lat, lng),
			"radius":   fmt.Sprintf("%d", searchRadiusMeters),
			"key":      c.apiKey,
		}).
		SetResult(&reply).
		Get("/maps/api/place/nearbysearch/json")
	if err != nil {
		return nil, errors.Wrap(err, "calling maps gateway")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("maps gateway returned %s", resp.Status())
	}

	seen := map[string]bool{}
	for _, result := range reply.Results {
		for _, placeType := range result.Types {
			if feature, ok := placeTypeToFeature[placeType]; ok {
				seen[feature] = true
			}
		}
	}

	features := make([]string, 0, len(seen))
	for feature := range seen {
		features = append(features, feature)
	}
	sort.Strings(features)
	return features, nil
}
