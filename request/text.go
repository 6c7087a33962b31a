package request

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// 读取行格式的输入：
//
//	N
//	Stop X: lat, lng, Dm to Y, ...
//	Bus 256: A > B > A
//	Bus 750: A - B - C
//	M
//	Bus 256
//	Stop X
func ReadText(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	doc := &Document{}

	lines, err := readSection(scanner)
	if err != nil {
		return nil, fmt.Errorf("base requests: %w", err)
	}
	for i, line := range lines {
		req, err := parseBaseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRequest, i+1, err)
		}
		doc.BaseRequests = append(doc.BaseRequests, req)
	}

	lines, err = readSection(scanner)
	if err != nil {
		return nil, fmt.Errorf("stat requests: %w", err)
	}
	for i, line := range lines {
		kind, name, ok := strings.Cut(line, " ")
		if !ok || (kind != TYPE_BUS && kind != TYPE_STOP) {
			return nil, fmt.Errorf("%w: stat line %d: %q", ErrMalformedRequest, i+1, line)
		}
		doc.StatRequests = append(doc.StatRequests, StatRequest{ID: i + 1, Type: kind, Name: strings.TrimSpace(name)})
	}
	return doc, nil
}

// 读取一段：数量行 + 对应行数
// 输入在数量行之前结束时返回空段
func readSection(scanner *bufio.Scanner) ([]string, error) {
	var header string
	for header == "" {
		if !scanner.Scan() {
			return nil, scanner.Err()
		}
		header = strings.TrimSpace(scanner.Text())
	}
	count, err := strconv.Atoi(header)
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: bad request count %q", ErrMalformedRequest, header)
	}
	// 数量来自输入，预分配设上限
	lines := make([]string, 0, min(count, 1024))
	for len(lines) < count {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: expected %d lines, got %d", ErrMalformedRequest, count, len(lines))
		}
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func parseBaseLine(line string) (BaseRequest, error) {
	kind, rest, ok := strings.Cut(line, " ")
	if !ok {
		return BaseRequest{}, fmt.Errorf("no request type in %q", line)
	}
	name, body, ok := strings.Cut(rest, ":")
	if !ok {
		return BaseRequest{}, fmt.Errorf("no ':' in %q", line)
	}
	name = strings.TrimSpace(name)
	switch kind {
	case TYPE_STOP:
		return parseStop(name, body)
	case TYPE_BUS:
		return parseBus(name, body), nil
	default:
		return BaseRequest{}, fmt.Errorf("unknown request type %q", kind)
	}
}

// 55.611087, 37.20829, 3900m to Marushkino, 9900m to Rasskazovka
func parseStop(name, body string) (BaseRequest, error) {
	parts := splitTrim(body, ",")
	if len(parts) < 2 {
		return BaseRequest{}, fmt.Errorf("stop %q needs coordinates", name)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return BaseRequest{}, fmt.Errorf("stop %q latitude: %w", name, err)
	}
	lng, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return BaseRequest{}, fmt.Errorf("stop %q longitude: %w", name, err)
	}
	req := BaseRequest{Type: TYPE_STOP, Name: name, Latitude: lat, Longitude: lng}
	for _, part := range parts[2:] {
		meters, to, ok := strings.Cut(part, "m to ")
		if !ok {
			return BaseRequest{}, fmt.Errorf("stop %q: bad distance %q", name, part)
		}
		d, err := strconv.Atoi(strings.TrimSpace(meters))
		if err != nil {
			return BaseRequest{}, fmt.Errorf("stop %q: bad distance %q: %w", name, part, err)
		}
		if req.RoadDistances == nil {
			req.RoadDistances = make(map[string]int)
		}
		req.RoadDistances[strings.TrimSpace(to)] = d
	}
	return req, nil
}

// 环线 A > B > A，非环线 A - B - C
func parseBus(name, body string) BaseRequest {
	if strings.Contains(body, ">") {
		return BaseRequest{Type: TYPE_BUS, Name: name, Stops: splitTrim(body, ">"), IsRoundtrip: true}
	}
	return BaseRequest{Type: TYPE_BUS, Name: name, Stops: splitTrim(body, "-")}
}

func splitTrim(s, sep string) []string {
	parts := make([]string, 0)
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// 以行格式输出Bus/Stop查询的应答
func WriteText(w io.Writer, h *Handler, reqs []StatRequest) error {
	bw := bufio.NewWriter(w)
	for _, req := range reqs {
		switch req.Type {
		case TYPE_BUS:
			stats, err := h.LineStats(req.Name)
			if err != nil {
				fmt.Fprintf(bw, "Bus %s: %s\n", req.Name, NOT_FOUND)
				continue
			}
			fmt.Fprintf(bw, "Bus %s: %d stops on route, %d unique stops, %d route length, %s curvature\n",
				req.Name, stats.StopCount, stats.UniqueStopCount, stats.RouteLength,
				strconv.FormatFloat(stats.Curvature, 'g', 6, 64))
		case TYPE_STOP:
			lines, err := h.LinesServing(req.Name)
			switch {
			case err != nil:
				fmt.Fprintf(bw, "Stop %s: %s\n", req.Name, NOT_FOUND)
			case len(lines) == 0:
				fmt.Fprintf(bw, "Stop %s: no buses\n", req.Name)
			default:
				fmt.Fprintf(bw, "Stop %s: buses %s\n", req.Name, strings.Join(lines, " "))
			}
		}
	}
	return bw.Flush()
}
