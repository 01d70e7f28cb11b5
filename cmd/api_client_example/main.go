package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

var client = &http.Client{Timeout: 10 * time.Second}

func main() {
	baseURL := flag.String("base", "http://localhost:8080", "dashboard API base URL")
	from := flag.String("from", "London", "origin city for the time delta")
	flag.Parse()

	fmt.Println("World Dashboard API Client Example")
	fmt.Println("==================================")

	var citiesData struct {
		Cities []struct {
			Name string `json:"name"`
		} `json:"cities"`
	}
	if err := getJSON(*baseURL+"/api/cities", &citiesData); err != nil {
		fmt.Printf("Error fetching cities: %v\n", err)
		os.Exit(1)
	}
	if len(citiesData.Cities) == 0 {
		fmt.Println("No cities configured.")
		return
	}

	for _, c := range citiesData.Cities {
		name := url.PathEscape(c.Name)
		fmt.Printf("\n== %s ==\n", c.Name)
		printEndpoint("clock", *baseURL+"/api/clocks/"+name)
		printEndpoint("sun", *baseURL+"/api/sun/"+name)
		printEndpoint("weather", *baseURL+"/api/weather/"+name)

		q := url.Values{"from": {*from}, "to": {c.Name}}
		printEndpoint("delta", *baseURL+"/api/delta?"+q.Encode())
	}
}

func printEndpoint(label, endpoint string) {
	var data map[string]interface{}
	if err := getJSON(endpoint, &data); err != nil {
		fmt.Printf("%s: %v\n", label, err)
		return
	}
	prettyJSON, _ := json.MarshalIndent(data, "", "  ")
	fmt.Printf("%s:\n%s\n", label, string(prettyJSON))
}

func getJSON(endpoint string, out interface{}) error {
	resp, err := client.Get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}
