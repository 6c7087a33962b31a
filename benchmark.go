package main

import (
	"context"
	"flag"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"connectrpc.com/connect"
	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/request"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 1000, "the random routing count for benchmark")
	benchmarkBatch = flag.Int("benchmark.batch", 10, "the stat request count per query for benchmark")
	benchmarkSeed  = flag.Int64("benchmark.seed", 0, "the seed for benchmark")
	benchmarkCPU   = flag.Int("benchmark.cpu", 1, "the cpu count for benchmark")
)

type benchmarkResult struct {
	Count   int
	Success int64
	Cost    time.Duration
}

// 随机生成count个查询，每个查询包含batch个起终点随机的Route请求
func randomRouteQueries(stopNames []string, count, batch int, seed int64) []*connect.Request[QueryRequest] {
	e := rand.New(rand.NewSource(seed))
	reqs := make([]*connect.Request[QueryRequest], count)
	for i := 0; i < count; i++ {
		stats := make([]request.StatRequest, batch)
		for j := range stats {
			stats[j] = request.StatRequest{
				ID:   i*batch + j,
				Type: request.TYPE_ROUTE,
				From: stopNames[e.Intn(len(stopNames))],
				To:   stopNames[e.Intn(len(stopNames))],
			}
		}
		reqs[i] = connect.NewRequest(&QueryRequest{StatRequests: stats})
	}
	return reqs
}

func benchmarkQueries(server *TransitServer, reqs []*connect.Request[QueryRequest], cpu int) benchmarkResult {
	success := xsync.NewCounter()
	run := func(req *connect.Request[QueryRequest]) {
		res, err := server.Query(context.Background(), req)
		if err != nil {
			log.Error("benchmark failed, err:", err)
			return
		}
		success.Add(int64(lo.CountBy(res.Msg.Responses, func(r any) bool {
			_, ok := r.(request.RouteResponse)
			return ok
		})))
	}
	start := time.Now()
	if cpu == 1 {
		for _, req := range reqs {
			run(req)
		}
	} else {
		// 设置cpu数量
		runtime.GOMAXPROCS(cpu)
		var wg sync.WaitGroup
		wg.Add(len(reqs))
		for _, req := range reqs {
			go func(req *connect.Request[QueryRequest]) {
				defer wg.Done()
				run(req)
			}(req)
		}
		wg.Wait()
	}
	return benchmarkResult{Count: len(reqs), Success: success.Value(), Cost: time.Since(start)}
}

func runBenchmark(server *TransitServer) {
	log.Logger.SetLevel(logrus.WarnLevel)
	snap := server.current()
	if snap == nil {
		log.Fatal("benchmark needs a base network, use -base")
	}
	stopNames := lo.Map(snap.handler.Catalogue().AllStopsSorted(), func(s *catalogue.Stop, _ int) string {
		return s.Name
	})
	if len(stopNames) == 0 || *benchmarkCount <= 0 {
		log.Fatal("benchmark needs at least one stop and one query")
	}
	reqs := randomRouteQueries(stopNames, *benchmarkCount, *benchmarkBatch, *benchmarkSeed)
	result := benchmarkQueries(server, reqs, *benchmarkCPU)
	timeCost := result.Cost * time.Duration(*benchmarkCPU)
	log.Error(
		"benchmark finished", "\n",
		"count:", result.Count, "\n",
		"time:", timeCost, "\n",
		"avg:", timeCost/time.Duration(result.Count), "\n",
		"success:", result.Success, "\n",
	)
}
