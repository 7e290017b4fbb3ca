package search

import (
	"context"
	"strconv"
	"time"

	"VidHub.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/olivere/elastic/v7"
	"github.com/pkg/errors"
)

const videoMapping = `{
	"mappings": {
		"properties": {
			"id":           {"type": "keyword"},
			"title":        {"type": "text"},
			"description":  {"type": "text"},
			"tags":         {"type": "keyword"},
			"type":         {"type": "keyword"},
			"user_id":      {"type": "keyword"},
			"visibility":   {"type": "boolean"},
			"publish_date": {"type": "date"}
		}
	}
}`

// VideoDoc 写入 ES 的视频文档
type VideoDoc struct {
	Id          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Type        string     `json:"type"`
	UserId      string     `json:"user_id"`
	Visibility  bool       `json:"visibility"`
	PublishDate *time.Time `json:"publish_date,omitempty"`
}

func NewVideoDoc(v *model.Video) *VideoDoc {
	return &VideoDoc{
		Id:          strconv.FormatInt(v.Id, 10),
		Title:       v.Title,
		Description: v.Description,
		Tags:        v.TagNames(),
		Type:        v.Type,
		UserId:      strconv.FormatInt(v.UserId, 10),
		Visibility:  v.Visibility,
		PublishDate: v.PublishDate,
	}
}

// Indexer 视频检索
type Indexer interface {
	IndexVideo(ctx context.Context, v *model.Video) error
	DeleteVideo(ctx context.Context, id int64) error
	SearchVideos(ctx context.Context, keyword, videoType string, limit, offset int) ([]int64, int64, error)
}

type ElasticIndexer struct {
	client *elastic.Client
	index  string
}

func NewElasticIndexer(ctx context.Context, url, index string) (*ElasticIndexer, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheckInterval(30*time.Second),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create elastic client failed")
	}
	exists, err := client.IndexExists(index).Do(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "check index failed")
	}
	if !exists {
		if _, err := client.CreateIndex(index).BodyString(videoMapping).Do(ctx); err != nil {
			return nil, errors.Wrap(err, "create index failed")
		}
		hlog.Infof("elastic index %s created", index)
	}
	return &ElasticIndexer{client: client, index: index}, nil
}

func (e *ElasticIndexer) IndexVideo(ctx context.Context, v *model.Video) error {
	doc := NewVideoDoc(v)
	_, err := e.client.Index().Index(e.index).Id(doc.Id).BodyJson(doc).Do(ctx)
	return errors.Wrapf(err, "index video %d failed", v.Id)
}

func (e *ElasticIndexer) DeleteVideo(ctx context.Context, id int64) error {
	_, err := e.client.Delete().Index(e.index).Id(strconv.FormatInt(id, 10)).Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return errors.Wrapf(err, "delete video %d from index failed", id)
}

// SearchVideos 只返回公开视频的 id，按相关度排序
func (e *ElasticIndexer) SearchVideos(ctx context.Context, keyword, videoType string, limit, offset int) ([]int64, int64, error) {
	query := BuildQuery(keyword, videoType)
	res, err := e.client.Search().
		Index(e.index).
		Query(query).
		From(offset).Size(limit).
		FetchSource(false).
		Do(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "search videos failed")
	}
	ids := make([]int64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		id, err := strconv.ParseInt(hit.Id, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, res.TotalHits(), nil
}

func BuildQuery(keyword, videoType string) *elastic.BoolQuery {
	q := elastic.NewBoolQuery().
		Must(elastic.NewMultiMatchQuery(keyword, "title^3", "description", "tags^2").Fuzziness("AUTO")).
		Filter(elastic.NewTermQuery("visibility", true))
	if videoType != "" {
		q = q.Filter(elastic.NewTermQuery("type", videoType))
	}
	return q
}
