package main

import (
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type place struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

type conditions struct {
	temp        float64
	humidity    float64
	wind        float64
	id          int
	description string
	icon        string
}

var places = map[string]place{
	"london": {Name: "London", Lat: 51.5074, Lon: -0.1278, Country: "GB", State: "England"},
	"paris":  {Name: "Paris", Lat: 48.8566, Lon: 2.3522, Country: "FR"},
	"berlin": {Name: "Berlin", Lat: 52.52, Lon: 13.405, Country: "DE"},
}

var weatherByPlace = map[string]conditions{
	"London": {temp: 15.2, humidity: 76, wind: 4.6, id: 802, description: "scattered clouds", icon: "03d"},
	"Paris":  {temp: 18.0, humidity: 68, wind: 3.1, id: 800, description: "clear sky", icon: "01d"},
	"Berlin": {temp: 12.0, humidity: 82, wind: 5.4, id: 804, description: "overcast clouds", icon: "04d"},
}

// nearest returns the known place closest to lat/lon, if any lies within ~50km
func nearest(lat, lon float64) (place, bool) {
	var best place
	bestDist := math.MaxFloat64
	for _, p := range places {
		d := math.Hypot(p.Lat-lat, p.Lon-lon)
		if d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, bestDist < 0.5
}

func coords(c *gin.Context) (float64, float64, bool) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	return lat, lon, errLat == nil && errLon == nil
}

func requireKey(c *gin.Context) {
	if c.Query("appid") == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key"})
		return
	}
	c.Next()
}

func main() {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/data/2.5/weather", requireKey, func(c *gin.Context) {
		lat, lon, ok := coords(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"cod": 400, "message": "wrong latitude or longitude"})
			return
		}

		// lat=-1,lon=-1 simulates an upstream outage
		if lat == -1 && lon == -1 {
			c.JSON(http.StatusInternalServerError, gin.H{"cod": 500, "message": "Internal error"})
			return
		}

		name := ""
		w := conditions{temp: 20, humidity: 50, wind: 2, id: 800, description: "clear sky", icon: "01d"}
		if p, found := nearest(lat, lon); found {
			name = p.Name
			w = weatherByPlace[p.Name]
		}

		c.JSON(http.StatusOK, gin.H{
			"name": name,
			"dt":   time.Now().Unix(),
			"main": gin.H{"temp": w.temp, "feels_like": w.temp - 1, "humidity": w.humidity},
			"wind": gin.H{"speed": w.wind},
			"weather": []gin.H{{
				"id": w.id, "main": "", "description": w.description, "icon": w.icon,
			}},
		})
	})

	r.GET("/geo/1.0/direct", requireKey, func(c *gin.Context) {
		q := strings.ToLower(strings.TrimSpace(c.Query("q")))
		if q == "servererror" {
			c.JSON(http.StatusInternalServerError, gin.H{"cod": 500, "message": "Internal error"})
			return
		}

		if p, ok := places[q]; ok {
			c.JSON(http.StatusOK, []place{p})
			return
		}
		c.JSON(http.StatusOK, []place{})
	})

	r.GET("/geo/1.0/reverse", requireKey, func(c *gin.Context) {
		lat, lon, ok := coords(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"cod": 400, "message": "wrong latitude or longitude"})
			return
		}

		if p, found := nearest(lat, lon); found {
			c.JSON(http.StatusOK, []place{p})
			return
		}
		c.JSON(http.StatusOK, []place{})
	})

	slog.Info("Mock OpenWeatherMap server starting on :8081")
	if err := r.Run(":8081"); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
