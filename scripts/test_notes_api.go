package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Notes API Smoke Test\n")

	// 1. Create a label
	color.Yellow("\n[1] Create Label 'smoke'")
	resp, body, err := sendRequest("POST", "/label/v1", "", map[string]interface{}{
		"name": "smoke",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 2. Create a note with a checklist
	color.Yellow("\n[2] Create Note")
	resp, body, err = sendRequest("POST", "/note/v1", "", map[string]interface{}{
		"title": "Smoke test note",
		"content": `[{"insert":"First item"},{"insert":"\n","attributes":{"block":"cl","checked":true}},` +
			`{"insert":"Second item"},{"insert":"\n","attributes":{"block":"cl"}}]`,
		"pinned": true,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	var created struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.Data.Id == "" {
		color.Red("Could not extract note id, aborting")
		os.Exit(1)
	}
	noteId := created.Data.Id

	// 3. List notes: the checklist preview should carry glyphs
	color.Yellow("\n[3] List Notes")
	resp, body, err = sendRequest("GET", "/note/v1", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 4. Export as markdown
	color.Yellow("\n[4] Export Note as Markdown")
	resp, body, err = sendRequest("GET", "/note/v1/"+noteId+"/export?format=markdown", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 5. Trash, restore, trash again
	color.Yellow("\n[5] Trash / Restore")
	resp, _, err = sendRequest("DELETE", "/note/v1/"+noteId, "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Trash: %s", resp.Status)

	resp, _, err = sendRequest("POST", "/note/v1/"+noteId+"/restore", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Restore: %s", resp.Status)

	// 6. Vault status
	color.Yellow("\n[6] Vault Status")
	resp, body, err = sendRequest("GET", "/vault/v1/status", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Cyan("\n✅ Smoke test finished")
}
