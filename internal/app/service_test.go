package service_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/okian/expertlens/internal/adapters/repository"
	service "github.com/okian/expertlens/internal/app"
	"github.com/okian/expertlens/internal/domain/profile"
	"github.com/okian/expertlens/internal/ingest"
	"github.com/okian/expertlens/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func startedService(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it reports sensible defaults", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["profileSource"], ShouldEqual, "mock")
			So(stats["highTaskThreshold"], ShouldEqual, 10)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithMaxSessions(5),
			service.WithGenerationConcurrency(2),
			service.WithHighTaskThreshold(20),
		)

		Convey("Then the options are applied", func() {
			stats := svc.GetStats()
			So(stats["maxSessions"], ShouldEqual, 5)
			So(stats["concurrency"], ShouldEqual, 2)
			So(stats["highTaskThreshold"], ShouldEqual, 20)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	svc := service.New()
	ctx := context.Background()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("second start: %v", err)
	}
	if started := svc.GetStats()["started"]; started != true {
		t.Fatalf("expected started, got %v", started)
	}
	svc.Stop()
	svc.Stop()
	if started := svc.GetStats()["started"]; started != false {
		t.Fatalf("expected stopped, got %v", started)
	}
}

func TestService_Upload(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService()
		defer svc.Stop()

		Convey("When a text file is uploaded", func() {
			res, err := svc.Upload(ctx, "talents.TXT", []byte("a1\n b2 \n# note\na1\n\nc3\n"))

			Convey("Then the unique identifiers are stored under a new session", func() {
				So(err, ShouldBeNil)
				So(res.TalentCount, ShouldEqual, 3)
				So(res.SessionID, ShouldHaveLength, 8)
			})

			Convey("Then the dashboard aggregates the session", func() {
				st, err := svc.Dashboard(ctx, res.SessionID)
				So(err, ShouldBeNil)
				So(st.TotalExperts, ShouldEqual, 3)
			})

			Convey("Then experts are paged in upload order", func() {
				page, err := svc.Experts(ctx, res.SessionID, 1, 1)
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, 3)
				So(page.Data, ShouldHaveLength, 1)
				So(page.Data[0].TalentID, ShouldEqual, "b2")

				page, err = svc.Experts(ctx, res.SessionID, 50, 10)
				So(err, ShouldBeNil)
				So(page.Data, ShouldBeEmpty)
			})
		})

		Convey("When an empty file is uploaded", func() {
			res, err := svc.Upload(ctx, "empty.txt", nil)

			Convey("Then the session holds valid zero statistics", func() {
				So(err, ShouldBeNil)
				So(res.TalentCount, ShouldEqual, 0)
				st, err := svc.Dashboard(ctx, res.SessionID)
				So(err, ShouldBeNil)
				So(st.TotalExperts, ShouldEqual, 0)
				So(st.TaskStats.AvgTasksPerExpert, ShouldEqual, 0)
			})
		})

		Convey("When a GBK file is uploaded", func() {
			raw, err := simplifiedchinese.GBK.NewEncoder().String("专家一\n专家二")
			So(err, ShouldBeNil)
			res, err := svc.Upload(ctx, "ids.txt", []byte(raw))

			Convey("Then the identifiers are decoded", func() {
				So(err, ShouldBeNil)
				page, err := svc.Experts(ctx, res.SessionID, 10, 0)
				So(err, ShouldBeNil)
				So(page.Data[0].TalentID, ShouldEqual, "专家一")
			})
		})

		Convey("When a non-text file is uploaded", func() {
			_, err := svc.Upload(ctx, "ids.csv", []byte("a"))

			Convey("Then it is rejected", func() {
				So(errors.Is(err, service.ErrUnsupportedFile), ShouldBeTrue)
			})
		})

		Convey("When undecodable bytes are uploaded", func() {
			_, err := svc.Upload(ctx, "ids.txt", []byte{0xff, 0xff})

			Convey("Then the encoding error surfaces", func() {
				So(errors.Is(err, ingest.ErrUnsupportedEncoding), ShouldBeTrue)
			})
		})

		Convey("When an unknown session is read", func() {
			_, err := svc.Dashboard(ctx, "deadbeef")

			Convey("Then it is not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Analyze(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService(service.WithGenerationConcurrency(2))
		defer svc.Stop()

		Convey("Then the same file yields the same profiles", func() {
			a, statsA, err := svc.Analyze(ctx, []byte("x\ny\nz"))
			So(err, ShouldBeNil)
			b, statsB, err := svc.Analyze(ctx, []byte("x\ny\nz"))
			So(err, ShouldBeNil)
			So(b, ShouldResemble, a)
			So(statsB.AvgScores, ShouldResemble, statsA.AvgScores)
		})
	})
}

func TestService_Sources(t *testing.T) {
	Convey("Given the remote profile source", t, func() {
		svc := startedService(service.WithProfileSource(profile.SourceRemote))
		defer svc.Stop()

		Convey("Then uploads fail as unimplemented", func() {
			_, err := svc.Upload(context.Background(), "ids.txt", []byte("a"))
			So(errors.Is(err, profile.ErrUnimplemented), ShouldBeTrue)
		})
	})

	Convey("Given an unknown profile source", t, func() {
		svc := service.New(service.WithProfileSource("ldap"))

		Convey("Then Start fails", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, profile.ErrUnknownSource), ShouldBeTrue)
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("Then reads fail", func() {
			_, err := svc.Dashboard(context.Background(), "abc")
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})
}
