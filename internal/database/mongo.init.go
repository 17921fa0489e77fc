package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"aptamer_api/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCollections tạo các collection còn thiếu trong database dbName
func EnsureCollections(ctx context.Context, client *mongo.Client, dbName string, names []string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db := client.Database(dbName)
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	have := make(map[string]bool, len(existing))
	for _, n := range existing {
		have[n] = true
	}

	log := logger.WithModule("database")
	for _, name := range names {
		if have[name] {
			continue
		}
		log.Infof("Collection %s chưa tồn tại, tạo mới.", name)
		if err := db.CreateCollection(ctx, name); err != nil {
			return nil, fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	log.Infof("Database and collections are ensured in database: %s", dbName)
	return db, nil
}

// IndexSpec mô tả một index sinh ra từ struct tag `index`
type IndexSpec struct {
	Name   string
	Keys   bson.D
	Unique bool
	TTL    *int32
}

// parseIndexTag tách tag dạng "single:1;ttl:3600" hoặc "compound:name,order:-1" thành các cấu hình
func parseIndexTag(tag string) []map[string]string {
	var result []map[string]string
	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, sub := range strings.Split(part, ",") {
			k, v, _ := strings.Cut(strings.TrimSpace(sub), ":")
			if k != "" {
				entry[k] = v
			}
		}
		if len(entry) > 0 {
			result = append(result, entry)
		}
	}
	return result
}

// parseOrder đọc thứ tự sắp xếp (1 hoặc -1), mặc định 1
func parseOrder(cfg map[string]string, key string) int {
	if cfg[key] == "-1" || cfg["order"] == "-1" {
		return -1
	}
	return 1
}

// IndexSpecs đọc tag `index` trên các field có tag `bson` của model.
// Hỗ trợ: single[:±1], unique, ttl:<giây>, compound:<tên nhóm>[,order:-1]
func IndexSpecs(model interface{}) ([]IndexSpec, error) {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}

	var specs []IndexSpec
	compound := map[string]bson.D{}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField, _, _ := strings.Cut(field.Tag.Get("bson"), ",")
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			if _, ok := cfg["single"]; ok {
				specs = append(specs, IndexSpec{
					Name: bsonField + "_single",
					Keys: bson.D{{Key: bsonField, Value: parseOrder(cfg, "single")}},
				})
			}
			if _, ok := cfg["unique"]; ok {
				specs = append(specs, IndexSpec{
					Name:   bsonField + "_unique",
					Keys:   bson.D{{Key: bsonField, Value: 1}},
					Unique: true,
				})
			}
			if v, ok := cfg["ttl"]; ok {
				secs, err := strconv.Atoi(v)
				if err != nil {
					return nil, fmt.Errorf("invalid ttl %q on field %s: %w", v, field.Name, err)
				}
				ttl := int32(secs)
				specs = append(specs, IndexSpec{
					Name: bsonField + "_ttl",
					Keys: bson.D{{Key: bsonField, Value: 1}},
					TTL:  &ttl,
				})
			}
			if group, ok := cfg["compound"]; ok && group != "" {
				compound[group] = append(compound[group], bson.E{Key: bsonField, Value: parseOrder(cfg, "compound")})
			}
		}
	}

	groups := make([]string, 0, len(compound))
	for g := range compound {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	for _, g := range groups {
		specs = append(specs, IndexSpec{Name: g, Keys: compound[g]})
	}
	return specs, nil
}

// CreateIndexes tạo các index khai báo trên model, bỏ qua index đã tồn tại cùng tên
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	specs, err := IndexSpecs(model)
	if err != nil {
		return err
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existing := map[string]bool{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			existing[name] = true
		}
	}

	log := logger.WithCollection(collection.Name()).WithField("module", "database")
	for _, spec := range specs {
		if existing[spec.Name] {
			log.Debugf("Index %s đã tồn tại, bỏ qua", spec.Name)
			continue
		}
		opts := options.Index().SetName(spec.Name)
		if spec.Unique {
			opts.SetUnique(true)
		}
		if spec.TTL != nil {
			opts.SetExpireAfterSeconds(*spec.TTL)
		}
		if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: opts}); err != nil {
			return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
		}
		log.Infof("Đã tạo index: %s", spec.Name)
	}
	return nil
}
