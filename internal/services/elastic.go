package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"vendora_back_end/internal/database"
	"vendora_back_end/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

//
// --- INDEXATION DANS ELASTICSEARCH ---
//

// IndexListing indexe une annonce (produit ou service) pour la recherche vitrine
func IndexListing(l models.Listing) {
	if database.Elastic == nil {
		log.Println("⚠️ Elastic non initialisé, impossible d'indexer:", l.Name)
		return
	}

	data, _ := json.Marshal(l)
	req := esapi.IndexRequest{
		Index:      "listings",
		DocumentID: l.ID.String(),
		Body:       bytes.NewReader(data),
		Refresh:    "true", // rend la donnée immédiatement visible
	}

	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", l.Name, res.String())
	} else {
		log.Printf("✅ Annonce indexée dans Elasticsearch: %s", l.Name)
	}
}

// RemoveListingFromIndex retire une annonce désactivée ou supprimée
func RemoveListingFromIndex(listingID string) {
	if database.Elastic == nil {
		return
	}

	req := esapi.DeleteRequest{Index: "listings", DocumentID: listingID}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		log.Println("❌ Erreur suppression Elastic:", err)
		return
	}
	defer res.Body.Close()
}

//
// --- RECHERCHE DANS ELASTICSEARCH ---
//

// SearchListings cherche des annonces par nom, description ou tags.
// kind ("product"/"service") et shopID filtrent si non vides.
func SearchListings(query, kind, shopID string) ([]map[string]interface{}, error) {
	if database.Elastic == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "description", "tags"},
			},
		},
	}
	filter := []map[string]interface{}{
		{"term": map[string]interface{}{"is_active": true}},
	}
	if kind != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"kind": kind}})
	}
	if shopID != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"shop_id": shopID}})
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
	}

	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{"listings"},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), database.Elastic)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		var e map[string]interface{}
		json.NewDecoder(res.Body).Decode(&e)
		log.Printf("❌ Elasticsearch erreur: %+v", e)
		return nil, errors.New("index non trouvé ou vide")
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}

	hitsData, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, errors.New("réponse Elastic invalide (pas de hits)")
	}

	hitsArray, ok := hitsData["hits"].([]interface{})
	if !ok {
		return nil, errors.New("aucun résultat trouvé")
	}

	results := make([]map[string]interface{}, 0, len(hitsArray))
	for _, hit := range hitsArray {
		hitMap, _ := hit.(map[string]interface{})
		if source, ok := hitMap["_source"].(map[string]interface{}); ok {
			results = append(results, source)
		}
	}

	return results, nil
}
