package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func runAsk(t *testing.T, url string, args ...string) (string, string, error) {
	return runAskIn(t, t.TempDir(), url, args...)
}

func runAskIn(t *testing.T, home, url string, args ...string) (string, string, error) {
	t.Setenv("HOME", home)
	t.Setenv("STUDY_API_URL", url)

	viper.Reset()
	taskFlag, htmlFlag, widthFlag, apiURL, cfgFile = "explain", false, 80, "", "config.yml"

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(append([]string{"ask"}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAsk(t *testing.T) {
	Convey("Given a generation service that answers", t, func() {
		var got map[string]string
		calls := 0

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write([]byte(`{"result":"# Quiz\n\n1. What is a BST?"}`))
		}))
		defer server.Close()

		Convey("When asking for a quiz", func() {
			out, _, err := runAsk(t, server.URL, "--task", "quiz", "Binary", "Search", "Trees")

			Convey("Then the rendered result is printed", func() {
				So(err, ShouldBeNil)
				So(calls, ShouldEqual, 1)
				So(got, ShouldResemble, map[string]string{"topic": "Binary Search Trees", "task_type": "quiz"})
				So(out, ShouldContainSubstring, "Quiz")
				So(out, ShouldContainSubstring, "1. What is a BST?")
			})
		})

		Convey("When asking for HTML", func() {
			out, _, err := runAsk(t, server.URL, "--html", "Trees")

			Convey("Then HTML is printed", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "<h1>Quiz</h1>")
			})
		})

		Convey("When the topic is blank", func() {
			out, _, err := runAsk(t, server.URL, "   ")

			Convey("Then nothing is sent or printed", func() {
				So(err, ShouldBeNil)
				So(calls, ShouldEqual, 0)
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When the task type is unknown", func() {
			_, _, err := runAsk(t, server.URL, "--task", "essay", "Trees")

			Convey("Then the command fails before sending", func() {
				So(err, ShouldNotBeNil)
				So(calls, ShouldEqual, 0)
			})
		})
	})

	Convey("Given an endpoint set only in a custom config file", t, func() {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			_, _ = w.Write([]byte(`{"result":"Trees are..."}`))
		}))
		defer server.Close()

		home := t.TempDir()
		yml := []byte("endpoint:\n  url: " + server.URL + "\n")

		Convey("When --config names a file in the config directory", func() {
			dir := filepath.Join(home, ".study-assistant")
			So(os.MkdirAll(dir, 0o755), ShouldBeNil)
			So(os.WriteFile(filepath.Join(dir, "custom.yml"), yml, 0o644), ShouldBeNil)

			out, _, err := runAskIn(t, home, "", "--config", "custom.yml", "Trees")

			Convey("Then the custom file is read", func() {
				So(err, ShouldBeNil)
				So(calls, ShouldEqual, 1)
				So(out, ShouldContainSubstring, "Trees are...")
			})
		})

		Convey("When --config is an absolute path", func() {
			path := filepath.Join(t.TempDir(), "study.yml")
			So(os.WriteFile(path, yml, 0o644), ShouldBeNil)

			out, _, err := runAskIn(t, home, "", "--config", path, "Trees")

			Convey("Then that exact file is read", func() {
				So(err, ShouldBeNil)
				So(calls, ShouldEqual, 1)
				So(out, ShouldContainSubstring, "Trees are...")
			})
		})

		Convey("When --config names a file that does not exist yet", func() {
			out, _, err := runAskIn(t, home, server.URL, "--config", "fresh.yml", "Trees")

			Convey("Then the default is written there and used", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Trees are...")
				_, statErr := os.Stat(filepath.Join(home, ".study-assistant", "fresh.yml"))
				So(statErr, ShouldBeNil)
			})
		})
	})

	Convey("Given a generation service that fails", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		Convey("When asking", func() {
			_, stderr, err := runAsk(t, server.URL, "Recursion")

			Convey("Then the fixed message is the error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldEqual, "Failed to generate content. Please try again.")
				So(stderr, ShouldContainSubstring, "Failed to generate content. Please try again.")
			})
		})
	})
}
