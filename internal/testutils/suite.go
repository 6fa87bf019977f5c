package testutils

import (
	"context"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamotypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"pulse-crm-backend/internal/store"
)

// ------------------------------
// Shared, process-wide resources
// ------------------------------
var (
	sharedOnce     sync.Once
	sharedInitErr  error
	sharedPool     *dockertest.Pool
	sharedResource *dockertest.Resource
	sharedStore    *store.Store
)

const liveTableName = "pulse-crm-test"

// LiveStore returns a Store backed by a shared dynamodb-local container,
// started once per test run. Tests are skipped when Docker is unavailable.
func LiveStore(t *testing.T) *store.Store {
	sharedOnce.Do(func() { sharedInitErr = initSharedDynamoContainer() })
	if sharedInitErr != nil {
		t.Skipf("dynamodb-local unavailable, skipping live tests: %v", sharedInitErr)
	}
	return sharedStore
}

// CleanupSharedContainer tears down Docker resources when the whole test run ends.
func CleanupSharedContainer() {
	if sharedPool != nil && sharedResource != nil {
		log.Printf("Purging Docker container: %s", sharedResource.Container.Name)
		if err := sharedPool.Purge(sharedResource); err != nil {
			log.Printf("WARN: could not purge shared resource: %v", err)
		}
		sharedResource = nil
		sharedPool = nil
		sharedStore = nil
	}
}

func initSharedDynamoContainer() error {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("could not construct docker pool: %w", err)
	}
	pool.MaxWait = 60 * time.Second
	if err := pool.Client.Ping(); err != nil {
		return fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "amazon/dynamodb-local",
		Tag:        "latest",
		Cmd:        []string{"-jar", "DynamoDBLocal.jar", "-inMemory"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return fmt.Errorf("could not start dynamodb-local: %w", err)
	}
	_ = resource.Expire(300)

	endpoint := fmt.Sprintf("http://localhost:%s", resource.GetPort("8000/tcp"))

	var client *dynamodb.Client
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		c, err := store.NewClient(ctx, store.ClientOptions{Region: "us-east-1", Endpoint: endpoint})
		if err != nil {
			return err
		}
		if _, err := c.ListTables(ctx, &dynamodb.ListTablesInput{}); err != nil {
			return err
		}
		client = c
		return nil
	}); err != nil {
		_ = pool.Purge(resource)
		return fmt.Errorf("dynamodb-local never became ready: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(liveTableName),
		AttributeDefinitions: []dynamotypes.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: dynamotypes.ScalarAttributeTypeS},
			{AttributeName: aws.String("SK"), AttributeType: dynamotypes.ScalarAttributeTypeS},
		},
		KeySchema: []dynamotypes.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: dynamotypes.KeyTypeHash},
			{AttributeName: aws.String("SK"), KeyType: dynamotypes.KeyTypeRange},
		},
		BillingMode: dynamotypes.BillingModePayPerRequest,
	}); err != nil {
		_ = pool.Purge(resource)
		return fmt.Errorf("could not create table: %w", err)
	}

	sharedPool = pool
	sharedResource = resource
	sharedStore = store.New(client, liveTableName)
	return nil
}
