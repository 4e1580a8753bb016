package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func (s *IntegrationTestSuite) TestSearch_SavesFavoriteWithSnapshot() {
	w := s.request(http.MethodPost, "/api/favorites/search", `{"place":"London"}`)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Status string `json:"status"`
		Data   struct {
			ID          uint   `json:"id"`
			DisplayName string `json:"display_name"`
			Snapshot    struct {
				Temperature float64 `json:"temperature"`
				Description string  `json:"description"`
			} `json:"snapshot"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("success", body.Status)
	s.Equal("London", body.Data.DisplayName)
	s.Equal(15.2, body.Data.Snapshot.Temperature)
	s.Equal("scattered clouds", body.Data.Snapshot.Description)
	s.Equal(int64(1), s.countFavorites())

	w = s.request(http.MethodGet, fmt.Sprintf("/api/favorites/%d", body.Data.ID), "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *IntegrationTestSuite) TestSearch_UnknownPlaceSavesNothing() {
	w := s.request(http.MethodPost, "/api/favorites/search", `{"place":"Atlantis"}`)

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(int64(0), s.countFavorites())
}

func (s *IntegrationTestSuite) TestList_NewestFirst() {
	for _, place := range []string{"London", "Paris", "Berlin"} {
		w := s.request(http.MethodPost, "/api/favorites/search", fmt.Sprintf(`{"place":%q}`, place))
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	w := s.request(http.MethodGet, "/api/favorites", "")
	s.Require().Equal(http.StatusOK, w.Code)

	var favs []struct {
		DisplayName string `json:"display_name"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &favs))
	s.Require().Len(favs, 3)
	s.Equal("Berlin", favs[0].DisplayName)
	s.Equal("London", favs[2].DisplayName)
}

func (s *IntegrationTestSuite) TestDelete() {
	w := s.request(http.MethodPost, "/api/favorites", `{"display_name":"Paris","latitude":48.8566,"longitude":2.3522}`)
	s.Require().Equal(http.StatusCreated, w.Code)

	var fav struct {
		ID uint `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &fav))

	w = s.request(http.MethodDelete, fmt.Sprintf("/api/favorites/%d", fav.ID), "")
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal(int64(0), s.countFavorites())

	w = s.request(http.MethodDelete, fmt.Sprintf("/api/favorites/%d", fav.ID), "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *IntegrationTestSuite) TestRefresh_StoresSnapshots() {
	w := s.request(http.MethodPost, "/api/favorites", `{"display_name":"Home","latitude":52.52,"longitude":13.405}`)
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodPost, "/api/favorites/refresh", "")
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/favorites", "")
	var favs []struct {
		Snapshot *struct {
			Description string `json:"description"`
		} `json:"snapshot"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &favs))
	s.Require().Len(favs, 1)
	s.Require().NotNil(favs[0].Snapshot)
	s.Equal("overcast clouds", favs[0].Snapshot.Description)
}
