package integration

import (
	"encoding/json"
	"net/http"
)

func (s *IntegrationTestSuite) TestWeather_Success() {
	w := s.request(http.MethodGet, "/api/weather?lat=48.8566&lon=2.3522", "")
	s.Require().Equal(http.StatusOK, w.Code)

	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("success", body["status"])
	s.Equal("clear sky", body["data"].(map[string]interface{})["description"])
}

func (s *IntegrationTestSuite) TestWeather_UpstreamFailure() {
	w := s.request(http.MethodGet, "/api/weather?lat=-1&lon=-1", "")

	s.Equal(http.StatusBadGateway, w.Code)
}

func (s *IntegrationTestSuite) TestReverseGeocode() {
	w := s.request(http.MethodGet, "/api/geocode/reverse?lat=51.5&lon=-0.12", "")
	s.Require().Equal(http.StatusOK, w.Code)

	var body map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("London", body["name"])
}

func (s *IntegrationTestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", "")
	s.Require().Equal(http.StatusOK, w.Code)

	var body struct {
		Status     string                            `json:"status"`
		Components map[string]map[string]interface{} `json:"components"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("healthy", body.Status)
	s.Equal("postgres", body.Components["database"]["details"].(map[string]interface{})["dialect"])
}
