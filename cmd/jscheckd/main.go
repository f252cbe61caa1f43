package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	arg "github.com/alexflint/go-arg"
	"github.com/codegangsta/negroni"
	"github.com/gorilla/mux"

	"jscheck/internal/server"
)

type args struct {
	Port int `arg:"--port" default:"8080" help:"port to listen on"`
}

func (args) Description() string {
	return "jscheckd - HTTP analysis service: POST /analyze, GET /health"
}

func main() {
	var a args
	arg.MustParse(&a)

	router := mux.NewRouter()
	server.NewServer(router)

	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile|log.Lmicroseconds)
	neg := negroni.New(
		negroni.NewRecovery(),
		negroni.NewLogger(),
		negroni.Wrap(router),
	)

	addr := fmt.Sprintf(":%d", a.Port)
	logger.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, neg); err != nil {
		log.Fatal(err)
	}
}
