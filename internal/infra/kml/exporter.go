// Package kml renders an analyzed location as a KML overlay so the point
// set can be opened in external map tools.
package kml

import (
	"fmt"
	"io"

	"insight/internal/domain/entity"
	"insight/internal/errors"

	kml "github.com/twpayne/go-kml/v2"
)

// Exporter writes AnalyzedLocation documents as KML.
type Exporter struct{}

// NewExporter creates a KML exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Write renders the analyzed location: one placemark for the center and one
// per amenity, with the radius tier noted in the description.
func (e *Exporter) Write(w io.Writer, location *entity.AnalyzedLocation) error {
	if location == nil {
		return errors.New("no analyzed location to export")
	}

	elements := make([]kml.Element, 0, len(location.Points)+2)
	elements = append(elements, kml.Name(location.Geo.DisplayName))
	elements = append(elements, kml.Placemark(
		kml.Name(location.Geo.DisplayName),
		kml.Description("Analyzed location"),
		kml.Point(kml.Coordinates(kml.Coordinate{Lon: location.Geo.Lng, Lat: location.Geo.Lat})),
	))

	for _, point := range location.Points {
		elements = append(elements, kml.Placemark(
			kml.Name(point.Name),
			kml.Description(describe(point)),
			kml.Point(kml.Coordinates(kml.Coordinate{Lon: point.Lng, Lat: point.Lat})),
		))
	}

	doc := kml.KML(kml.Document(elements...))
	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return errors.Wrap(err, "write kml document")
	}

	return nil
}

func describe(point entity.Amenity) string {
	tier := "driving"
	if point.Walking {
		tier = "walking"
	}

	return fmt.Sprintf("%s (%s radius, %.0fm away)", point.Type, tier, point.DistanceMeters)
}
