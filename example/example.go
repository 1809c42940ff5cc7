package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/muzzletov/minidom"
	"go.uber.org/zap"
)

func openGraphTags(ctx context.Context, client *minidom.WebClient, url string) error {
	doc, err := client.FetchDocument(ctx, url)

	if err != nil {
		return err
	}

	for _, id := range doc.Query("head > meta").Get() {
		n := doc.Node(id)

		if property, _ := n.Attr("property"); property == "og:title" || property == "og:video:tag" {
			content, _ := n.Attr("content")
			fmt.Println(content)
		}
	}

	return nil
}

func main() {
	logger, err := zap.NewDevelopment()

	if err != nil {
		log.Fatal(err)
	}

	defer logger.Sync()

	doc := minidom.ParseMarkup(`<html><body><p class="x">Hello <b>world</b></p></body></html>`, minidom.WithLogger(logger))
	fmt.Print(doc)

	sheet := minidom.ParseStylesheet(`p, .x { color: red; margin: 0 }`, minidom.WithLogger(logger))
	fmt.Print(sheet)

	if len(os.Args) < 2 {
		return
	}

	client, err := minidom.NewClient(minidom.WithLogger(logger))

	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := openGraphTags(ctx, client, os.Args[1]); err != nil {
		log.Fatal(err)
	}
}
