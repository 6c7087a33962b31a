package request

import (
	"errors"
	"fmt"
	"io"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/geo"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

var (
	log = logrus.WithField("module", "request")

	ErrMalformedRequest = errors.New("malformed request")

	validate = validator.New()
)

// 读取JSON输入文档
func Load(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	if doc.RoutingSettings != nil {
		if err := validate.Struct(doc.RoutingSettings); err != nil {
			return nil, fmt.Errorf("%w: routing_settings: %v", ErrMalformedRequest, err)
		}
	}
	if doc.RenderSettings != nil {
		if err := validate.Struct(doc.RenderSettings); err != nil {
			return nil, fmt.Errorf("%w: render_settings: %v", ErrMalformedRequest, err)
		}
	}
	return doc, nil
}

// 按 车站 -> 距离 -> 线路 的顺序填充Catalogue
// 线路引用的车站必须已经声明
func BuildCatalogue(reqs []BaseRequest) (*catalogue.Catalogue, error) {
	for i := range reqs {
		if err := validate.Struct(&reqs[i]); err != nil {
			return nil, fmt.Errorf("%w: base request %d (%q): %v", ErrMalformedRequest, i, reqs[i].Name, err)
		}
	}
	c := catalogue.New()
	for _, req := range reqs {
		if req.Type != TYPE_STOP {
			continue
		}
		if _, err := c.AddStop(req.Name, geo.Coordinates{Lat: req.Latitude, Lng: req.Longitude}); err != nil {
			return nil, err
		}
	}
	for _, req := range reqs {
		if req.Type != TYPE_STOP {
			continue
		}
		for to, meters := range req.RoadDistances {
			if err := c.SetDistanceByNames(req.Name, to, meters); err != nil {
				return nil, fmt.Errorf("road distances of %q: %w", req.Name, err)
			}
		}
	}
	for _, req := range reqs {
		if req.Type != TYPE_BUS {
			continue
		}
		if _, err := c.AddLineByNames(req.Name, req.Stops, req.IsRoundtrip); err != nil {
			return nil, err
		}
	}
	log.Debugf("catalogue filled: %d stops, %d lines", c.StopCount(), c.LineCount())
	return c, nil
}
