package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/funfair/waitpredictor/internal/mlmodel"
	"github.com/funfair/waitpredictor/internal/predictor"
	"github.com/funfair/waitpredictor/models"
)

func main() {
	catalog := models.DefaultCatalog()

	ride := flag.String("ride", "Mega Coaster", "Ride name: "+strings.Join(catalog.Names(), ", "))
	hour := flag.Int("hour", models.DefaultHour, fmt.Sprintf("Hour of day (%d-%d)", models.MinHour, models.MaxHour))
	weather := flag.String("weather", string(models.WeatherSunny), "Weather: Sunny, Cloudy or Rainy")
	day := flag.String("day", string(models.DayTypeWeekday), "Day type: Weekday or Weekend")
	modelPath := flag.String("model", mlmodel.DefaultPath, "Path to the model artifact")
	asJSON := flag.Bool("json", false, "Print the dashboard as JSON")
	flag.Parse()

	service := predictor.NewService(mlmodel.NewLoader(*modelPath), catalog, nil)

	dashboard, err := service.Predict(context.Background(), models.PredictionInput{
		Ride:    *ride,
		Hour:    *hour,
		Weather: models.Weather(*weather),
		DayType: models.DayType(*day),
	})
	if err != nil {
		log.Fatalf("Prediction failed: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dashboard); err != nil {
			log.Fatalf("Failed to encode dashboard: %v", err)
		}
		return
	}

	if !dashboard.ModelAvailable {
		fmt.Println(dashboard.Notice)
		return
	}

	fmt.Printf("Estimated wait for %s at %d:00: %d min\n", dashboard.Ride, *hour, dashboard.Result.WaitMinutes)
	fmt.Printf("Status: %s\n\n", dashboard.Result.Label)
	fmt.Println(dashboard.Chart.Title)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HOUR\tWAIT (MIN)\t")
	for _, p := range dashboard.Trend {
		marker := ""
		if p.Hour == dashboard.Chart.SelectedHour {
			marker = "<- selected"
		}
		fmt.Fprintf(tw, "%02d:00\t%.1f\t%s\n", p.Hour, p.WaitMinutes, marker)
	}
	tw.Flush()
}
