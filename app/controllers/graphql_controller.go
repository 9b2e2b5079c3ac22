package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	gql "github.com/shashiranjanraj/vastra/pkg/graphql"
)

// NewCatalogueSchema builds the read-only GraphQL view of the catalogue.
// Prices surface as strings to keep decimal amounts exact on the wire.
func NewCatalogueSchema(repo repositories.ProductRepository) (graphql.Schema, error) {
	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          {Type: graphql.NewNonNull(graphql.String)},
			"name":        {Type: graphql.NewNonNull(graphql.String)},
			"description": {Type: graphql.String},
			"brand":       {Type: graphql.String},
			"category":    {Type: graphql.String},
			"sizes":       {Type: graphql.NewList(graphql.String)},
			"colors":      {Type: graphql.NewList(graphql.String)},
			"stock":       {Type: graphql.Int},
			"featured":    {Type: graphql.Boolean},
			"imageUrls": {
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Product).ImageURLs, nil
				},
			},
			"price": {
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Product).Price.String(), nil
				},
			},
			"inStock": {
				Type: graphql.Boolean,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(models.Product).InStock(), nil
				},
			},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": {
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": {Type: graphql.String},
					"search":   {Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if term, ok := p.Args["search"].(string); ok && term != "" {
						return repo.Search(p.Context, term)
					}
					if cat, ok := p.Args["category"].(string); ok && cat != "" {
						return repo.ListByCategory(p.Context, cat)
					}
					return repo.List(p.Context)
				},
			},
			"product": {
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": {Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prod, err := repo.GetByID(p.Context, p.Args["id"].(string))
					if err == repositories.ErrNotFound {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return prod, nil
				},
			},
			"featured": {
				Type: productType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					prod, err := repo.Featured(p.Context)
					if err != nil || prod == nil {
						return nil, err
					}
					return *prod, nil
				},
			},
		},
	})

	return gql.NewSchema(query)
}

// NewCatalogueHandler wires the schema into an HTTP handler.
func NewCatalogueHandler(repo repositories.ProductRepository) (http.HandlerFunc, error) {
	schema, err := NewCatalogueSchema(repo)
	if err != nil {
		return nil, err
	}
	return gql.Handler(schema), nil
}
