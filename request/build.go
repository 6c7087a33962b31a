package request

import (
	"git.fiblab.net/sim/transit/renderer"
	"git.fiblab.net/sim/transit/router"
)

// 由构建请求与参数编译出Handler
// 文档中的routing_settings/render_settings优先于给定的默认值
func Build(doc *Document, routing router.Settings, render renderer.Settings) (*Handler, error) {
	c, err := BuildCatalogue(doc.BaseRequests)
	if err != nil {
		return nil, err
	}
	if doc.RoutingSettings != nil {
		routing = *doc.RoutingSettings
	}
	if doc.RenderSettings != nil {
		render = *doc.RenderSettings
	}
	r, err := router.New(c, routing)
	if err != nil {
		return nil, err
	}
	log.Infof("network compiled: %d stops, %d lines, %d graph edges", c.StopCount(), c.LineCount(), r.EdgeCount())
	return NewHandler(c, r, renderer.New(render)), nil
}
