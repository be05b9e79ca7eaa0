package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/expertlens/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeIDs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenIDsCommand(t *testing.T) {
	convey.Convey("Given the gen-ids command", t, func() {
		convey.Convey("When asked for five ids", func() {
			out, err := run(t, "gen-ids", "-n", "5")

			convey.Convey("Then five distinct uuids are printed", func() {
				convey.So(err, convey.ShouldBeNil)
				lines := strings.Fields(out)
				convey.So(lines, convey.ShouldHaveLength, 5)
				seen := map[string]bool{}
				for _, l := range lines {
					_, perr := uuid.Parse(l)
					convey.So(perr, convey.ShouldBeNil)
					seen[l] = true
				}
				convey.So(seen, convey.ShouldHaveLength, 5)
			})
		})

		convey.Convey("When the count is negative", func() {
			_, err := run(t, "gen-ids", "-n", "-1")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestProfileCommand(t *testing.T) {
	convey.Convey("Given an id file with a duplicate and a comment", t, func() {
		path := writeIDs(t, "# batch\na\nb\na\n\nc\n")

		convey.Convey("When profiling without experts", func() {
			out, err := run(t, "profile", "-f", path)
			convey.So(err, convey.ShouldBeNil)

			var got map[string]json.RawMessage
			convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)

			convey.Convey("Then only the stats are printed", func() {
				convey.So(got, convey.ShouldContainKey, "stats")
				convey.So(got, convey.ShouldNotContainKey, "experts")

				var stats struct {
					TotalExperts int `json:"total_experts"`
				}
				convey.So(json.Unmarshal(got["stats"], &stats), convey.ShouldBeNil)
				convey.So(stats.TotalExperts, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When profiling with experts", func() {
			out, err := run(t, "profile", "-f", path, "--experts")
			convey.So(err, convey.ShouldBeNil)

			var got struct {
				Experts []struct {
					TalentID string `json:"talent_id"`
				} `json:"experts"`
			}
			convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)

			convey.Convey("Then the profiles follow the file order", func() {
				convey.So(got.Experts, convey.ShouldHaveLength, 3)
				convey.So(got.Experts[0].TalentID, convey.ShouldEqual, "a")
				convey.So(got.Experts[1].TalentID, convey.ShouldEqual, "b")
				convey.So(got.Experts[2].TalentID, convey.ShouldEqual, "c")
			})
		})

		convey.Convey("When the file flag is missing", func() {
			_, err := run(t, "profile")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the file does not exist", func() {
			_, err := run(t, "profile", "-f", filepath.Join(t.TempDir(), "missing.txt"))
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestServeMux(t *testing.T) {
	convey.Convey("Given a started service behind the full mux", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		svc := newService(cfg)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newMux(ctx, cfg, svc))
		defer srv.Close()

		convey.Convey("When an id file is uploaded", func() {
			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			fw, _ := mw.CreateFormFile("file", "ids.txt")
			_, _ = fw.Write([]byte("x1\nx2\nx3\nx4\n"))
			_ = mw.Close()

			resp, err := http.Post(srv.URL+"/api/upload", mw.FormDataContentType(), &buf)
			convey.So(err, convey.ShouldBeNil)
			defer func() { _ = resp.Body.Close() }()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)

			var up struct {
				SessionID   string `json:"session_id"`
				TalentCount int    `json:"talent_count"`
			}
			convey.So(json.NewDecoder(resp.Body).Decode(&up), convey.ShouldBeNil)
			convey.So(up.TalentCount, convey.ShouldEqual, 4)

			convey.Convey("Then the dashboard and experts are readable", func() {
				dash, err := http.Get(srv.URL + "/api/dashboard/" + up.SessionID)
				convey.So(err, convey.ShouldBeNil)
				defer func() { _ = dash.Body.Close() }()
				convey.So(dash.StatusCode, convey.ShouldEqual, http.StatusOK)

				exp, err := http.Get(srv.URL + "/api/dashboard/" + up.SessionID + "/experts?limit=2&offset=1")
				convey.So(err, convey.ShouldBeNil)
				defer func() { _ = exp.Body.Close() }()
				var page struct {
					Total int               `json:"total"`
					Data  []json.RawMessage `json:"data"`
				}
				convey.So(json.NewDecoder(exp.Body).Decode(&page), convey.ShouldBeNil)
				convey.So(page.Total, convey.ShouldEqual, 4)
				convey.So(page.Data, convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When static routes are requested", func() {
			for _, path := range []string{"/", "/api-docs", "/openapi.yaml", "/api/health", "/healthz", "/stats"} {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("When an unknown session is requested", func() {
			resp, err := http.Get(srv.URL + "/api/dashboard/unknown")
			convey.So(err, convey.ShouldBeNil)
			_ = resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusNotFound)
		})
	})
}
